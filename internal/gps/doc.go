// Package gps reads NMEA 0183 from a serial GNSS receiver or chart plotter
// feed and keeps a position snapshot built from the decoded sentences:
// - RMC and GLL for position, RMC for speed, course and UTC time
// - GGA for altitude, fix quality, satellites and HDOP
// - VTG for speed and course, HDT for heading
package gps
