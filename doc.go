// Package armkin computes forward and inverse kinematics for six-axis arms
// described by Denavit-Hartenberg parameters with a spherical wrist.
//
// Given six joint angles it evaluates the tool pose. Given a tool pose and a
// branch selector (shoulder, elbow, wrist) it returns the joint angles in
// closed form, checked against per-joint limits.
//
// # Installation
//
//	go install github.com/gwillem/armkin/cmd/armkin@latest
//
// # Usage
//
// Enter the arm geometry, and optionally find and calibrate the servo bus:
//
//	armkin setup
//
// Then solve a pose, evaluate joint angles, or explore interactively:
//
//	armkin solve --x 300 --y 0 --z 500 --beta 90 --all
//	armkin forward --angles 0,0,0,0,0,0
//	armkin explore
//	armkin console
//
// # Packages
//
// The module is organized into the following packages:
//
//   - cmd/armkin: CLI with solve, forward, console, setup, explore, ports and track commands
//   - pkg/kinematics: Link geometry, forward evaluation, pose decomposition, inverse solver and joint limits
//   - pkg/console: Line-oriented DH parameter console for a four-joint arm
//   - pkg/robot: Servo calibration, configuration and the serial bus
//   - pkg/track: Polls the physical arm and publishes its tool pose
package armkin
