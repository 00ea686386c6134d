/*
 * oplsaa2005.go, part of godissolve.
 *
 * Copyright 2026 The godissolve Authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package ff

import (
	dissolve "github.com/rmera/godissolve"
)

//OPLS-AA (2005) atom types and terms. Energies are in kJ/mol and the force constants
//follow the 0.5 k convention of the Harmonic forms, so they are twice the OPLS values.
//Short-range parameters are epsilon (kJ/mol), sigma (A).
//Rows keep the order of the OPLS-AA parameter file, so the wildcard rows only
//catch the type combinations that no earlier row names.

const (
	harmB = dissolve.BondHarmonic
	harmA = dissolve.AngleHarmonic
	cos3  = dissolve.TorsionCos3
)

// oplsType is an atom type and the chemical family it belongs to.
type oplsType struct {
	family string
	t      *AtomType
}

func oplsaa2005Types() []oplsType {
	at := func(family string, id int, el, name, desc string, q, eps, sigma float64) oplsType {
		return oplsType{family, MustAtomType(id, el, name, "", desc, q, eps, sigma)}
	}
	return []oplsType{
		at("alkanes", 135, "C", "CT", "alkane CH3-", -0.18, 0.276144, 3.5),
		at("alkanes", 136, "C", "CT", "alkane -CH2-", -0.12, 0.276144, 3.5),
		at("alkanes", 137, "C", "CT", "alkane >CH-", -0.06, 0.276144, 3.5),
		at("alkanes", 138, "C", "CT", "alkane CH4", -0.24, 0.276144, 3.5),
		at("alkanes", 139, "C", "CT", "alkane >C<", 0.0, 0.276144, 3.5),
		at("alkanes", 140, "H", "HC", "alkane H", 0.06, 0.12552, 2.5),
		at("alkenes", 141, "C", "CM", "alkene R2-C=", 0.0, 0.317984, 3.55),
		at("alkenes", 142, "C", "CM", "alkene RH-C=", -0.115, 0.317984, 3.55),
		at("alkenes", 143, "C", "CM", "alkene H2-C=", -0.23, 0.317984, 3.55),
		at("alkenes", 144, "H", "HC", "alkene H-C=", 0.115, 0.12552, 2.42),
		at("aromatics", 145, "C", "CA", "benzene C", -0.115, 0.29288, 3.55),
		at("aromatics", 146, "H", "HA", "benzene H", 0.115, 0.12552, 2.42),
		at("aromatics", 147, "C", "CA", "naphthalene fusion C", 0.0, 0.29288, 3.55),
		at("aromatics", 148, "C", "CT", "toluene CH3", -0.065, 0.276144, 3.5),
		at("aromatics", 149, "C", "CT", "ethylbenzene -CH2-", -0.005, 0.276144, 3.5),
		at("aromatics", 166, "C", "CA", "phenol C-OH", 0.15, 0.29288, 3.55),
		at("aromatics", 167, "O", "OH", "phenol O", -0.585, 0.71128, 3.07),
		at("aromatics", 168, "H", "HO", "phenol H", 0.435, 0.0, 0.0),
		at("aromatics", 263, "C", "CA", "chlorobenzene C-Cl", 0.18, 0.29288, 3.55),
		at("aromatics", 264, "Cl", "Cl", "chlorobenzene Cl", -0.18, 1.2552, 3.4),
		at("alcohols", 154, "O", "OH", "alcohol O", -0.683, 0.71128, 3.12),
		at("alcohols", 155, "H", "HO", "alcohol H-O", 0.418, 0.0, 0.0),
		at("alcohols", 156, "H", "HC", "alcohol H-C(OH)", 0.04, 0.12552, 2.5),
		at("alcohols", 157, "C", "CT", "alcohol CH3-OH, -CH2-OH", 0.145, 0.276144, 3.5),
		at("alcohols", 158, "C", "CT", "alcohol >CH-OH", 0.205, 0.276144, 3.5),
		at("alcohols", 159, "C", "CT", "alcohol >C(OH)<", 0.265, 0.276144, 3.5),
		at("diols", 169, "O", "OH", "diol O", -0.7, 0.71128, 3.07),
		at("diols", 170, "H", "HO", "diol H-O", 0.435, 0.0, 0.0),
		at("triols", 171, "O", "OH", "triol O", -0.73, 0.71128, 3.07),
		at("triols", 172, "H", "HO", "triol H-O", 0.465, 0.0, 0.0),
		at("triols", 173, "C", "CT", "triol -CH2-OH", 0.195, 0.276144, 3.5),
		at("triols", 174, "C", "CT", "triol >CH-OH", 0.255, 0.276144, 3.5),
		at("triols", 175, "C", "CT", "triol >C(OH)<", 0.315, 0.276144, 3.5),
		at("ethers", 180, "O", "OS", "ether O", -0.4, 0.58576, 2.9),
		at("ethers", 181, "C", "CT", "ether CH3-O", 0.11, 0.276144, 3.5),
		at("ethers", 182, "C", "CT", "ether -CH2-O", 0.14, 0.276144, 3.5),
		at("ethers", 183, "C", "CT", "ether >CH-O", 0.17, 0.276144, 3.5),
		at("ethers", 184, "C", "CT", "ether >C(O)<", 0.2, 0.276144, 3.5),
		at("ethers", 185, "H", "HC", "ether H-C(O)", 0.03, 0.12552, 2.5),
		at("water", 111, "O", "OW", "TIP3P water O", -0.834, 0.636386, 3.15061),
		at("water", 112, "H", "HW", "TIP3P water H", 0.417, 0.0, 0.0),
		at("amides", 235, "C", "C", "amide C=O", 0.5, 0.43932, 3.75),
		at("amides", 236, "O", "O", "amide O=C", -0.5, 0.87864, 2.96),
		at("amides", 237, "N", "N", "amide -NH2", -0.76, 0.71128, 3.25),
		at("amides", 238, "N", "N", "amide -NH-", -0.5, 0.71128, 3.25),
		at("amides", 239, "N", "N", "amide >N-", -0.14, 0.71128, 3.25),
		at("amides", 240, "H", "H", "amide H on N, primary", 0.38, 0.0, 0.0),
		at("amides", 241, "H", "H", "amide H on N, secondary", 0.3, 0.0, 0.0),
		at("amides", 242, "C", "CT", "amide CH3 on N, secondary", 0.02, 0.276144, 3.5),
		at("amides", 243, "C", "CT", "amide CH3 on N, tertiary", -0.11, 0.276144, 3.5),
		at("amides", 244, "C", "CT", "amide -CH2- on N, secondary", 0.08, 0.276144, 3.5),
		at("amides", 245, "C", "CT", "amide >CH- on N, secondary", 0.14, 0.276144, 3.5),
		at("carbonyls", 277, "C", "C", "aldehyde C=O", 0.45, 0.43932, 3.75),
		at("carbonyls", 278, "O", "O", "aldehyde O=C", -0.45, 0.87864, 2.96),
		at("carbonyls", 279, "H", "HC", "aldehyde H-C=O", 0.0, 0.06276, 2.42),
		at("carbonyls", 280, "C", "C", "ketone C=O", 0.47, 0.43932, 3.75),
		at("carbonyls", 281, "O", "O", "ketone O=C", -0.47, 0.87864, 2.96),
		at("carbonyls", 282, "H", "HC", "ketone and aldehyde alpha H", 0.06, 0.06276, 2.42),
		at("carbonyls", 283, "C", "CT", "alpha CH3-C=O", -0.18, 0.276144, 3.5),
		at("carbonyls", 284, "C", "CT", "alpha -CH2-C=O", -0.12, 0.276144, 3.5),
		at("carbonyls", 285, "C", "CT", "alpha >CH-C=O", -0.06, 0.276144, 3.5),
		at("acids", 267, "C", "C", "carboxylic acid C=O", 0.52, 0.43932, 3.75),
		at("acids", 268, "O", "OH", "carboxylic acid -OH", -0.53, 0.71128, 3.0),
		at("acids", 269, "O", "O", "carboxylic acid =O", -0.44, 0.87864, 2.96),
		at("acids", 270, "H", "HO", "carboxylic acid H-O", 0.45, 0.0, 0.0),
		at("acids", 271, "C", "C", "carboxylate C", 0.7, 0.43932, 3.75),
		at("acids", 272, "O", "O2", "carboxylate O", -0.8, 0.87864, 2.96),
		at("esters", 465, "C", "C", "ester C=O", 0.51, 0.43932, 3.75),
		at("esters", 466, "O", "O", "ester O=C", -0.43, 0.87864, 2.96),
		at("esters", 467, "O", "OS", "ester -O-", -0.33, 0.71128, 3.0),
		at("esters", 468, "C", "CT", "ester methoxy C", 0.16, 0.276144, 3.5),
		at("esters", 469, "H", "HC", "ester methoxy H", 0.03, 0.06276, 2.42),
		at("halogens", 164, "F", "F", "alkyl fluoride F", -0.22, 0.255224, 2.94),
		at("halogens", 151, "Cl", "Cl", "alkyl chloride Cl", -0.2, 1.2552, 3.4),
		at("halogens", 152, "C", "CT", "alkyl chloride RCH2Cl", 0.08, 0.276144, 3.5),
		at("halogens", 961, "C", "CT", "perfluoroalkane CF3", 0.36, 0.276144, 3.5),
		at("halogens", 962, "C", "CT", "perfluoroalkane CF2", 0.24, 0.276144, 3.5),
		at("halogens", 964, "F", "F", "perfluoroalkane F", -0.12, 0.221752, 2.95),
		at("sulfur", 200, "S", "SH", "thiol S", -0.335, 1.7782, 3.6),
		at("sulfur", 202, "S", "S", "sulfide S", -0.335, 1.7782, 3.6),
		at("sulfur", 203, "S", "S", "disulfide S", -0.22, 1.7782, 3.6),
		at("sulfur", 204, "H", "HS", "thiol H-S", 0.155, 0.0, 0.0),
		at("sulfur", 205, "C", "CT", "thiol CH3-SH", 0.0, 0.276144, 3.5),
		at("sulfur", 206, "C", "CT", "thiol -CH2-SH", 0.06, 0.276144, 3.5),
		at("sulfur", 208, "C", "CT", "disulfide CH3-S", 0.04, 0.276144, 3.5),
		at("sulfur", 209, "C", "CT", "sulfide CH3-S", -0.0125, 0.276144, 3.5),
		at("sulfur", 210, "C", "CT", "sulfide -CH2-S", 0.0475, 0.276144, 3.5),
		at("amines", 900, "N", "NT", "primary amine N", -0.9, 0.71128, 3.3),
		at("amines", 901, "N", "NT", "secondary amine N", -0.78, 0.71128, 3.3),
		at("amines", 902, "N", "NT", "tertiary amine N", -0.63, 0.71128, 3.3),
		at("amines", 906, "C", "CT", "amine CH3-NH2", 0.06, 0.276144, 3.5),
		at("amines", 907, "C", "CT", "amine -CH2-NH2", 0.12, 0.276144, 3.5),
		at("amines", 909, "H", "H", "primary amine H-N", 0.36, 0.0, 0.0),
		at("amines", 910, "H", "H", "secondary amine H-N", 0.38, 0.0, 0.0),
		at("amines", 911, "H", "HC", "amine H-C(N)", 0.04, 0.12552, 2.5),
		at("amines", 912, "C", "CT", "amine CH3-NHR", 0.08, 0.276144, 3.5),
		at("amines", 913, "C", "CT", "amine CH3-NR2", 0.09, 0.276144, 3.5),
		at("pyridines", 520, "N", "NC", "pyridine N", -0.678, 0.71128, 3.25),
		at("pyridines", 521, "C", "CA", "pyridine C2", 0.473, 0.29288, 3.55),
		at("pyridines", 522, "C", "CA", "pyridine C3", -0.447, 0.29288, 3.55),
		at("pyridines", 523, "C", "CA", "pyridine C4", 0.227, 0.29288, 3.55),
		at("pyridines", 524, "H", "HA", "pyridine H2", 0.012, 0.12552, 2.42),
		at("pyridines", 525, "H", "HA", "pyridine H3", 0.155, 0.12552, 2.42),
		at("pyridines", 526, "H", "HA", "pyridine H4", 0.065, 0.12552, 2.42),
		at("nitriles", 690, "N", "NZ", "nitrile N", -0.56, 0.71128, 3.2),
		at("nitriles", 691, "C", "CZ", "nitrile C", 0.46, 0.276144, 3.3),
		at("nitriles", 692, "C", "CT", "nitrile CH3-CN", -0.08, 0.276144, 3.5),
		at("nitriles", 693, "C", "CT", "nitrile -CH2-CN", -0.02, 0.276144, 3.5),
		at("nitro", 760, "N", "NO", "nitro N", 0.54, 0.50208, 3.25),
		at("nitro", 761, "O", "ON", "nitro O", -0.37, 0.71128, 2.96),
		at("nitro", 762, "C", "CT", "nitro CH3-NO2", 0.02, 0.276144, 3.5),
		at("nitro", 763, "C", "CT", "nitro -CH2-NO2", 0.08, 0.276144, 3.5),
		at("ions", 401, "Cl", "Cl", "chloride ion", -1.0, 0.492833, 4.41724),
		at("ions", 407, "Na", "Na", "sodium ion", 1.0, 0.01159, 3.33045),
		at("ions", 408, "K", "K", "potassium ion", 1.0, 0.000137, 4.93463),
		at("noblegases", 1101, "He", "He", "helium", 0.0, 0.08368, 2.556),
		at("noblegases", 1102, "Ne", "Ne", "neon", 0.0, 0.29288, 2.78),
		at("noblegases", 1103, "Ar", "Ar", "argon", 0.0, 0.978638, 3.401),
		at("noblegases", 1104, "Kr", "Kr", "krypton", 0.0, 1.3598, 3.624),
		at("noblegases", 1105, "Xe", "Xe", "xenon", 0.0, 1.832592, 3.935),
	}
}

func oplsaa2005Bonds() []*BondTerm {
	b := func(i, j string, k, eq float64) *BondTerm { return MustBondTerm(i, j, harmB, k, eq) }
	return []*BondTerm{
		b("OW", "HW", 4627.504, 0.9572),
		b("C", "C", 2928.8, 1.525),
		b("C", "CA", 3924.592, 1.49),
		b("C", "CM", 3573.136, 1.444),
		b("C", "CT", 2652.656, 1.522),
		b("C", "HC", 2845.12, 1.09),
		b("C", "N", 4100.32, 1.335),
		b("C", "O", 4769.76, 1.229),
		b("C", "O2", 5489.408, 1.25),
		b("C", "OH", 3765.6, 1.364),
		b("C", "OS", 1790.752, 1.327),
		b("CA", "CA", 3924.592, 1.4),
		b("CA", "CT", 2652.656, 1.51),
		b("CA", "HA", 3071.056, 1.08),
		b("CA", "OH", 3765.6, 1.364),
		b("CA", "F", 3514.56, 1.354),
		b("CA", "Cl", 2510.4, 1.725),
		b("CA", "NC", 4041.744, 1.339),
		b("CA", "NT", 3573.136, 1.381),
		b("CA", "S", 2092.0, 1.76),
		b("CM", "CM", 4594.032, 1.34),
		b("CM", "CT", 2652.656, 1.51),
		b("CM", "HC", 2845.12, 1.08),
		b("CM", "CA", 3573.136, 1.433),
		b("CM", "OS", 3765.6, 1.327),
		b("CT", "CT", 2242.624, 1.529),
		b("CT", "HC", 2845.12, 1.09),
		b("CT", "N", 2820.016, 1.449),
		b("CT", "NT", 3071.056, 1.448),
		b("CT", "OH", 2677.76, 1.41),
		b("CT", "OS", 2677.76, 1.41),
		b("CT", "S", 1857.696, 1.81),
		b("CT", "SH", 1857.696, 1.81),
		b("CT", "F", 3071.056, 1.332),
		b("CT", "Cl", 2050.16, 1.781),
		b("CT", "CZ", 3263.52, 1.47),
		b("CT", "NO", 3138.0, 1.49),
		b("CZ", "NZ", 9623.2, 1.157),
		b("CZ", "HC", 3514.56, 1.08),
		b("H", "N", 3631.712, 1.01),
		b("H", "NT", 3631.712, 1.01),
		b("HO", "OH", 4627.504, 0.945),
		b("HS", "SH", 2292.832, 1.336),
		b("S", "S", 1389.088, 2.038),
		b("NO", "ON", 4602.4, 1.225),
		b("CA", "NO", 3347.2, 1.46),
	}
}

func oplsaa2005Angles() []*AngleTerm {
	a := func(i, j, k string, kf, eq float64) *AngleTerm { return MustAngleTerm(i, j, k, harmA, kf, eq) }
	return []*AngleTerm{
		a("HW", "OW", "HW", 836.8, 104.52),
		a("HC", "CT", "HC", 276.144, 107.8),
		a("CT", "CT", "HC", 313.8, 110.7),
		a("CT", "CT", "CT", 488.2728, 112.7),
		a("CT", "CT", "OH", 418.4, 109.5),
		a("HC", "CT", "OH", 292.88, 109.5),
		a("CT", "OH", "HO", 460.24, 108.5),
		a("OH", "CT", "OH", 774.8768, 111.55),
		a("CA", "CA", "CA", 527.184, 120.0),
		a("CA", "CA", "HA", 292.88, 120.0),
		a("CA", "CA", "CT", 585.76, 120.0),
		a("CA", "CT", "HC", 292.88, 109.5),
		a("CA", "CT", "CT", 527.184, 114.0),
		a("CA", "CA", "OH", 585.76, 120.0),
		a("CA", "OH", "HO", 292.88, 113.0),
		a("CA", "CA", "F", 669.44, 120.0),
		a("CA", "CA", "Cl", 627.6, 120.0),
		a("CA", "CA", "C", 585.76, 120.0),
		a("CA", "C", "O", 669.44, 120.4),
		a("CA", "C", "CT", 585.76, 116.0),
		a("CA", "NC", "CA", 585.76, 117.0),
		a("CA", "CA", "NC", 585.76, 124.0),
		a("HA", "CA", "NC", 292.88, 116.0),
		a("CA", "CA", "NO", 711.28, 120.0),
		a("CA", "NO", "ON", 669.44, 117.5),
		a("CA", "CA", "S", 711.28, 119.4),
		a("N", "C", "O", 669.44, 122.9),
		a("CT", "C", "O", 669.44, 120.4),
		a("CT", "C", "N", 585.76, 116.6),
		a("CT", "C", "CT", 585.76, 116.0),
		a("HC", "C", "O", 292.88, 123.0),
		a("HC", "C", "N", 334.72, 114.0),
		a("HC", "C", "CT", 292.88, 115.0),
		a("HC", "C", "OS", 334.72, 109.5),
		a("O", "C", "OH", 669.44, 121.0),
		a("CT", "C", "OH", 585.76, 108.0),
		a("C", "OH", "HO", 292.88, 113.0),
		a("O2", "C", "O2", 669.44, 126.0),
		a("CT", "C", "O2", 585.76, 117.0),
		a("O", "C", "OS", 694.544, 123.4),
		a("CT", "C", "OS", 677.808, 111.4),
		a("C", "OS", "CT", 694.544, 116.9),
		a("C", "N", "CT", 418.4, 121.9),
		a("C", "N", "H", 292.88, 119.8),
		a("H", "N", "H", 292.88, 120.0),
		a("H", "N", "CT", 317.984, 118.4),
		a("CT", "N", "CT", 418.4, 118.0),
		a("HC", "CT", "N", 292.88, 109.5),
		a("CT", "CT", "N", 669.44, 109.7),
		a("C", "CT", "HC", 292.88, 109.5),
		a("CT", "CT", "C", 527.184, 111.1),
		a("C", "CT", "C", 527.184, 111.1),
		a("N", "CT", "C", 527.184, 110.1),
		a("CM", "CM", "HC", 292.88, 120.0),
		a("HC", "CM", "HC", 292.88, 117.0),
		a("CM", "CM", "CT", 585.76, 124.0),
		a("CM", "CT", "HC", 292.88, 109.5),
		a("CT", "CM", "HC", 292.88, 117.0),
		a("CM", "CT", "CT", 527.184, 111.1),
		a("CT", "CM", "CT", 585.76, 130.0),
		a("CM", "CM", "CA", 711.28, 120.7),
		a("CM", "CM", "OS", 585.76, 123.0),
		a("CM", "OS", "CT", 627.6, 111.0),
		a("CT", "CT", "Cl", 577.392, 109.8),
		a("HC", "CT", "Cl", 426.768, 107.6),
		a("Cl", "CT", "Cl", 652.704, 111.7),
		a("CT", "CT", "F", 418.4, 109.5),
		a("F", "CT", "F", 644.336, 109.1),
		a("HC", "CT", "F", 334.72, 107.0),
		a("CT", "S", "CT", 518.816, 98.9),
		a("CT", "CT", "S", 418.4, 114.7),
		a("HC", "CT", "S", 292.88, 109.5),
		a("CT", "S", "S", 569.024, 103.7),
		a("CT", "SH", "HS", 368.192, 96.0),
		a("CT", "CT", "SH", 418.4, 108.6),
		a("HC", "CT", "SH", 292.88, 109.5),
		a("CT", "CZ", "NZ", 1255.2, 180.0),
		a("HC", "CZ", "NZ", 1255.2, 180.0),
		a("CT", "CT", "CZ", 488.2728, 112.7),
		a("HC", "CT", "CZ", 292.88, 108.5),
		a("CT", "NO", "ON", 669.44, 117.5),
		a("ON", "NO", "ON", 669.44, 125.0),
		a("CT", "CT", "NO", 528.8576, 111.1),
		a("HC", "CT", "NO", 292.88, 105.0),
		a("CT", "NT", "H", 292.88, 109.5),
		a("H", "NT", "H", 364.8448, 106.4),
		a("CT", "CT", "NT", 669.44, 111.2),
		a("HC", "CT", "NT", 292.88, 109.5),
		a("CT", "NT", "CT", 433.4624, 107.2),
		a("CA", "NT", "H", 292.88, 116.0),
		a("CA", "CA", "NT", 585.76, 120.1),
		a("CT", "OS", "CT", 502.08, 109.5),
		a("CT", "CT", "OS", 418.4, 109.5),
		a("HC", "CT", "OS", 292.88, 109.5),
		a("OS", "CT", "OS", 774.8768, 111.55),
		a("OH", "CT", "OS", 774.8768, 111.55),
	}
}

func oplsaa2005Torsions() []*TorsionTerm {
	t := func(i, j, k, l string, v1, v2, v3 float64) *TorsionTerm {
		return MustTorsionTerm(i, j, k, l, cos3, v1, v2, v3)
	}
	return []*TorsionTerm{
		t("HC", "CT", "CT", "HC", 0.0, 0.0, 1.2552),
		t("CT", "CT", "CT", "HC", 0.0, 0.0, 1.2552),
		t("CT", "CT", "CT", "CT", 7.28016, -0.656888, 1.167336),
		t("HC", "CT", "CT", "OH", 0.0, 0.0, 1.958112),
		t("CT", "CT", "OH", "HO", -1.489504, -0.728016, 2.058528),
		t("HC", "CT", "OH", "HO", 0.0, 0.0, 1.8828),
		t("CT", "CT", "CT", "OH", -6.493568, 0.0, 0.0),
		t("OH", "CT", "CT", "OH", 39.781472, 0.0, 0.0),
		t("OH", "CT", "CT", "CT", -6.493568, 0.0, 0.0),
		t("HA", "CA", "CA", "HA", 0.0, 30.334, 0.0),
		t("*", "CA", "CA", "*", 0.0, 30.334, 0.0),
		t("CT", "CA", "CA", "CT", 0.0, 30.334, 0.0),
		t("CA", "CA", "CA", "OH", 0.0, 30.334, 0.0),
		t("HC", "CT", "CA", "CA", 0.0, 0.0, 0.0),
		t("CT", "CT", "CA", "CA", 0.0, 0.0, 0.0),
		t("CA", "CA", "OH", "HO", 0.0, 7.037488, 0.0),
		t("CA", "CA", "C", "O", 0.0, 8.7864, 0.0),
		t("CA", "CA", "C", "CT", 0.0, 8.7864, 0.0),
		t("CA", "CA", "NO", "ON", 0.0, 4.8116, 0.0),
		t("CA", "CA", "NT", "H", 0.0, 8.49352, 0.0),
		t("*", "CA", "NC", "*", 0.0, 41.84, 0.0),
		t("HC", "CT", "C", "O", 0.0, 0.0, 0.0),
		t("HC", "CT", "C", "N", 0.0, 0.0, 0.0),
		t("HC", "CT", "C", "CT", 0.0, 0.0, 0.0),
		t("HC", "CT", "C", "OH", 0.0, 0.0, 0.0),
		t("HC", "CT", "C", "OS", 0.0, 0.0, 0.0),
		t("HC", "CT", "C", "O2", 0.0, 0.0, 0.0),
		t("CT", "CT", "C", "O", 0.0, 0.0, 0.0),
		t("CT", "CT", "C", "N", 11.430688, 0.0, 0.0),
		t("CT", "CT", "C", "CT", 0.0, 0.0, 0.0),
		t("CT", "CT", "C", "OH", 7.30108, 0.0, 0.0),
		t("CT", "CT", "C", "OS", 0.0, 0.0, 0.0),
		t("CT", "CT", "C", "O2", 0.0, 0.0, 0.0),
		t("HC", "C", "CT", "HC", 0.0, 0.0, 0.0),
		t("HC", "C", "CT", "CT", 0.0, 0.0, 0.0),
		t("O", "C", "OH", "HO", 0.0, 23.012, 0.0),
		t("CT", "C", "OH", "HO", 12.552, 23.012, 0.0),
		t("O", "C", "OS", "CT", 0.0, 21.438816, 0.0),
		t("CT", "C", "OS", "CT", 19.535096, 21.438816, 0.0),
		t("HC", "C", "OS", "CT", 19.535096, 21.438816, 0.0),
		t("C", "OS", "CT", "HC", 0.0, 0.0, 0.828432),
		t("C", "OS", "CT", "CT", -6.029144, 1.3598, 0.0),
		t("CT", "C", "N", "CT", 9.6232, 25.476376, 0.0),
		t("O", "C", "N", "H", 0.0, 20.5016, 0.0),
		t("O", "C", "N", "CT", 0.0, 20.5016, 0.0),
		t("*", "C", "N", "*", 0.0, 20.5016, 0.0),
		t("C", "N", "CT", "HC", 0.0, 0.0, 0.0),
		t("H", "N", "CT", "HC", 0.0, 0.0, 0.0),
		t("C", "N", "CT", "CT", -5.824128, -1.163152, 0.0),
		t("CT", "N", "CT", "HC", 0.0, 0.0, 0.0),
		t("N", "CT", "CT", "HC", 0.0, 0.0, 1.941376),
		t("N", "CT", "CT", "CT", 0.0, 0.0, 0.0),
		t("HC", "CM", "CM", "HC", 0.0, 58.576, 0.0),
		t("*", "CM", "CM", "*", 0.0, 58.576, 0.0),
		t("CM", "CM", "CT", "HC", 0.0, 0.0, -1.556448),
		t("CM", "CM", "CT", "CT", 1.447664, 1.69452, -3.782336),
		t("HC", "CM", "CT", "HC", 0.0, 0.0, 1.330512),
		t("CT", "CM", "CT", "HC", 0.0, 0.0, 0.0),
		t("CT", "CM", "CT", "CT", 0.0, 0.0, 0.0),
		t("HC", "CM", "CT", "CT", 0.0, 0.0, 0.0),
		t("CM", "CM", "CA", "CA", 0.0, 12.552, 0.0),
		t("CM", "CM", "OS", "CT", -4.184, 11.2968, 0.0),
		t("HC", "CT", "CT", "Cl", 0.0, 0.0, 1.6736),
		t("CT", "CT", "CT", "Cl", -1.046, 0.0, 0.0),
		t("Cl", "CT", "CT", "Cl", -1.046, 0.0, 0.0),
		t("HC", "CT", "CT", "F", 0.0, 0.0, 1.305408),
		t("CT", "CT", "CT", "F", 0.0, 0.0, 0.0),
		t("F", "CT", "CT", "F", -10.46, 0.0, 1.046),
		t("HC", "CT", "CT", "S", 0.0, 0.0, 1.891168),
		t("CT", "CT", "S", "CT", 3.8702, -2.409984, 2.832568),
		t("HC", "CT", "S", "CT", 0.0, 0.0, 2.707048),
		t("CT", "CT", "CT", "S", 10.957896, -2.59408, 1.079472),
		t("HC", "CT", "SH", "HS", 0.0, 0.0, 1.886984),
		t("CT", "CT", "SH", "HS", -3.175656, -1.179888, 2.522952),
		t("HC", "CT", "CT", "SH", 0.0, 0.0, 1.891168),
		t("CT", "CT", "CT", "SH", -6.188136, -0.757304, 1.046),
		t("CT", "S", "S", "CT", 0.0, -31.020176, 7.13372),
		t("HC", "CT", "S", "S", 0.0, 0.0, 2.334672),
		t("CT", "CT", "S", "S", 8.121144, -3.497824, 3.91204),
		t("CT", "CT", "OS", "CT", 2.7196, -1.046, 2.80328),
		t("HC", "CT", "OS", "CT", 0.0, 0.0, 3.17984),
		t("HC", "CT", "CT", "OS", 0.0, 0.0, 1.958112),
		t("CT", "CT", "CT", "OS", -6.493568, 0.0, 0.0),
		t("OS", "CT", "CT", "OS", -2.3012, 0.0, 0.0),
		t("OH", "CT", "CT", "OS", 18.070696, 0.0, 0.0),
		t("HC", "CT", "NT", "H", 0.0, 0.0, 1.6736),
		t("CT", "CT", "NT", "H", -0.79496, -1.744728, 1.748912),
		t("HC", "CT", "CT", "NT", 0.0, 0.0, 1.941376),
		t("CT", "CT", "CT", "NT", 10.008128, -2.820016, 2.3012),
		t("HC", "CT", "NT", "CT", 0.0, 0.0, 2.34304),
		t("CT", "NT", "CT", "CT", 1.740544, -0.535552, 2.90788),
		t("HC", "CT", "CZ", "NZ", 0.0, 0.0, 0.0),
		t("CT", "CT", "CZ", "NZ", 0.0, 0.0, 0.0),
		t("HC", "CT", "CT", "CZ", 0.0, 0.0, -0.317984),
		t("CT", "CT", "CT", "CZ", -4.238392, -2.966456, 1.979032),
		t("HC", "CT", "NO", "ON", 0.0, 0.0, 0.0),
		t("CT", "CT", "NO", "ON", 0.0, 0.0, 0.0),
		t("HC", "CT", "CT", "NO", 0.0, 0.0, 0.0),
		t("CT", "CT", "CT", "NO", -4.234208, 0.0, 0.0),
	}
}

// The central atom of an improper is the third one.
func oplsaa2005Impropers() []*ImproperTerm {
	t := func(i, j, k, l string, v1, v2, v3 float64) *ImproperTerm {
		return MustImproperTerm(i, j, k, l, cos3, v1, v2, v3)
	}
	return []*ImproperTerm{
		t("*", "*", "C", "O", 0.0, 43.932, 0.0),
		t("*", "*", "C", "O2", 0.0, 43.932, 0.0),
		t("*", "*", "CA", "HA", 0.0, 9.2048, 0.0),
		t("*", "*", "CA", "*", 0.0, 9.2048, 0.0),
		t("*", "*", "N", "H", 0.0, 10.46, 0.0),
		t("*", "*", "N", "CT", 0.0, 10.46, 0.0),
		t("*", "*", "CM", "*", 0.0, 62.76, 0.0),
		t("*", "*", "NO", "ON", 0.0, 43.932, 0.0),
	}
}
