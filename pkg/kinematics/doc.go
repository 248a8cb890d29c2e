// Package kinematics implements forward and closed-form inverse kinematics
// for serial arms described by Denavit-Hartenberg tables.
//
// A Geometry holds the constant part of each joint: link length, link
// offset, a twist that is a multiple of 90°, a zero offset and a direction.
// ForwardChain composes the per-joint transforms into cumulative frames and
// the tool frame. Decompose turns a rotation into Euler angles under
// R = Rz(gamma)·Ry(beta)·Rx(alpha).
//
// Solver handles six-axis arms with a spherical wrist (see NewSixAxis). It
// splits the problem at the wrist center: joints 1–3 place the wrist,
// joints 4–6 orient the tool. A Selector picks one of up to eight branches:
//
//	Arm    +1 right shoulder, -1 left shoulder (reaching over the base)
//	Elbow  +1 elbow above the wrist line, -1 below
//	Hand   +1 flipped wrist, -1 unflipped
//
// All functions are pure. Lengths are millimeters, angles are radians except
// for Limit, which is expressed in degrees.
package kinematics
