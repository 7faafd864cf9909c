// Package trajectory owns the recorded position stream of the lead vehicle.
//
// Responsibilities: ingestion of INS trajectory exports, origin
// normalisation, and path downsampling for display and follower start
// positions.
// Key types: Sample, Log, FormatError, ParseError.
//
// Dependency rule: trajectory depends only on fsutil and monitoring. It
// knows nothing about vehicles or filtering.
package trajectory
