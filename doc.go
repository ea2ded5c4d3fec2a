// SPDX-License-Identifier: MIT

// Package ssnstat is an exploratory spatial-statistics toolkit for
// observations on stream networks: empirical semivariograms, Torgegrams
// and comparison of spatial stream-network (SSN) covariance models.
//
// 🚀 What is ssnstat?
//
//	A small set of composable packages that take a table of sites (planar
//	coordinates, a response, covariates) and, optionally, the stream
//	topology the sites sit on:
//		• Distances: Euclidean matrix, five-number summary
//		• Semivariograms: cloud, classical and Cressie–Hawkins estimates,
//		  permutation envelopes
//		• Stream networks: additive function values, flow-connected and
//		  flow-unconnected distances, Torgegram
//		• Models: tail-up / tail-down / Euclidean covariance mixtures,
//		  REML/ML fits, AIC ranking, leave-one-out cross-validation
//
// Under the hood the packages are layered:
//
//	core/        thread-safe directed graph of reaches
//	dfs/         topological order and cycle detection
//	dijkstra/    downstream path lengths
//	matrix/      distance matrix storage and validators
//	observation/ typed observation sets and CSV input
//	distance/    Euclidean distances and summaries
//	network/     stream topology, AFV weights, network distances
//	variogram/   cloud, empirical semivariogram, envelope, Torgegram
//	ssn/         covariance models, fitting, comparison, best subset
//	report/      flat CSV and JSON outputs
//
// Quick ASCII example:
//
//	n1 ──r1──┐
//	         j ──r3──> out
//	n2 ──r2──┘
//
//	a site on r1 and a site on r3 are flow-connected; sites on r1 and r2
//	are flow-unconnected and meet at j.
//
// The cmd/ssnstat runner wires every stage from a YAML configuration.
package ssnstat
