// Package analysis summarizes run telemetry.
//
//   - [PowerSpectrum]: one-sided power spectrum of a series (Hann window, mean removed)
//   - [DominantFrequency]: strongest non-zero frequency in a series
//   - [Describe]: min, max, mean, standard deviation and final value
//
// Spectra of the population or kinetic energy series show periodic
// behaviour such as bouncing piles or regular spawn bursts:
//
//	pop, _ := store.LoadSeries(runID, "population")
//	freq, power := analysis.DominantFrequency(pop, 60)
package analysis
