// Copyright 2025 The Gopave Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package hankel builds the quadrature grid for the inverse Hankel
// transform. The integrand contains the product J1(m*a)*J0(m*r) whose
// zeros are dense near the origin; anchoring the integration panels on
// these zeros gives fast convergence for smooth multipliers.
package hankel

// first 50 positive zeros of the Bessel function J0
var j0zeros = []float64{
	2.40482555769577, 5.52007811028631, 8.65372791291101, 11.7915344390143, 14.9309177084878,
	18.0710639679109, 21.2116366298793, 24.3524715307493, 27.4934791320403, 30.6346064684320,
	33.7758202135736, 36.9170983536640, 40.0584257646282, 43.1997917131767, 46.3411883716618,
	49.4826098973978, 52.6240518411150, 55.7655107550200, 58.9069839260809, 62.0484691902272,
	65.1899648002069, 68.3314693298568, 71.4729816035937, 74.6145006437018, 77.7560256303881,
	80.8975558711376, 84.0390907769382, 87.1806298436412, 90.3221726372105, 93.4637187819448,
	96.6052679509963, 99.7468198586806, 102.888374254195, 106.029930916452, 109.171489649805,
	112.313050280495, 115.454612653667, 118.596176630873, 121.737742087951, 124.879308913233,
	128.020877006008, 131.162446275214, 134.304016638305, 137.445588020284, 140.587160352854,
	143.728733573690, 146.870307625797, 150.011882456955, 153.153458019228, 156.295034268534,
}

// first 50 positive zeros of the Bessel function J1
var j1zeros = []float64{
	3.83170597020751, 7.01558666981562, 10.1734681350627, 13.3236919363142, 16.4706300508776,
	19.6158585104682, 22.7600843805928, 25.9036720876184, 29.0468285349169, 32.1896799109744,
	35.3323075500839, 38.4747662347716, 41.6170942128145, 44.7593189976528, 47.9014608871855,
	51.0435351835715, 54.1855536410613, 57.3275254379010, 60.4694578453475, 63.6113566984812,
	66.7532267340985, 69.8950718374958, 73.0368952255738, 76.1786995846415, 79.3204871754763,
	82.4622599143736, 85.6040194363502, 88.7457671449263, 91.8875042516950, 95.0292318080447,
	98.1709507307908, 101.312661823039, 104.454365791283, 107.596063259509, 110.737754780899,
	113.879440847595, 117.021121898892, 120.162798328149, 123.304470488636, 126.446138698517,
	129.587803245104, 132.729464388510, 135.871122364789, 139.012777388660, 142.154429655859,
	145.296079345196, 148.437726620342, 151.579371631401, 154.721014516286, 157.862655401930,
}

// J0Zeros returns the first n tabulated positive zeros of J0 (n <= 50)
func J0Zeros(n int) []float64 {
	if n > len(j0zeros) {
		n = len(j0zeros)
	}
	return j0zeros[:n]
}

// J1Zeros returns the first n tabulated positive zeros of J1 (n <= 50)
func J1Zeros(n int) []float64 {
	if n > len(j1zeros) {
		n = len(j1zeros)
	}
	return j1zeros[:n]
}
