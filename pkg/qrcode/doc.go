// Package qrcode renders QR codes as PNG images on top of skip2/go-qrcode.
//
//	png, err := qrcode.Generate(link, qrcode.WithSize(320), qrcode.WithLevel(qrcode.High))
//
// GenerateDataURI returns the same image as a data URI.
package qrcode
