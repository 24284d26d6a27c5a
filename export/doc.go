// Package export turns one user's slice of the key tree into a ceremony
// record, writes it with QR images into an ephemeral directory and shows it
// to the operator once. The directory is removed before ExportUser returns.
package export
