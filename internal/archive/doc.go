// Package archive reads and writes single-entry zip archives whose entry is
// DEFLATE-compressed and then encrypted with WinZip AES-256 (AE-2).
//
// Writing uses archive/zip's raw mode: the entry payload is compressed and
// sealed by this package and handed to [zip.Writer.CreateRaw] together with
// the 0x9901 extra field, compression method 99 and the encryption flag.
// AE-2 stores a zero CRC-32; integrity is carried by the HMAC instead.
//
// Archives produced here open in 7-Zip, WinZip and `unzip` builds with AES
// support using the generated password.
package archive
