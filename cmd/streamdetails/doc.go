// Command streamdetails encodes, inspects and stores per-file stream details:
// the video, audio and subtitle stream descriptors of a media item, archived
// in a compact little-endian binary format.
//
// Typical flow:
//
//	streamdetails encode --ffprobe report.json --out film.sdx
//	streamdetails show film.sdx
//	streamdetails store put /media/film.mkv --ffprobe report.json
package main
