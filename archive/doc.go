// Package archive provides access to bundle archives.
//
// A bundle is a zip container whose entries mirror a unit naming hierarchy
// via /-separated paths. Entries ending in UnitSuffix are compiled units;
// everything else is ignored by discovery. Enumeration is lazy, finite and
// follows archive-native order; restarting means reopening the archive.
package archive
