// Package integration exercises the idle feed, the actuator and the
// coordinator together with fake OS backends.
package integration
