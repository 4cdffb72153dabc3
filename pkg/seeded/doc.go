// Package seeded derives reproducible arrays and graphs from an integer seed.
//
// The generator is the classic linear congruential recurrence
//
//	state = (state*9301 + 49297) mod 233280
//	value = state / 233280
//
// Its constants and draw order are a reproducibility contract: golden fixtures
// in this repository encode its exact output, so it must not be replaced by a
// higher-quality source. The low-order-bit periodicity of the sequence is known
// and kept on purpose.
package seeded
