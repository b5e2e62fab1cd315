// Package analysis characterizes double pendulum trajectories.
//
//   - [Lyapunov]: largest Lyapunov exponent by renormalized trajectory
//     separation
//   - [Sweep]: the exponent over a range of one physical constant
//   - [NewPortrait]: 2D phase space projection of a trajectory
//   - [Poincare]: section of a trajectory at upward zero crossings of
//     angle0
//   - [DominantFrequency]: strongest frequency of a sampled signal
//
// # Chaos Detection
//
// A clearly positive largest exponent indicates chaotic motion:
//
//	lambda := analysis.Lyapunov(c, s0, 0.01, 60, 1e-8)
//	if lambda > 0.1 {
//	    // chaotic
//	}
package analysis
