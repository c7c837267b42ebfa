package systray

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"math"
)

const iconSize = 32

// Icon renders the tray icon (a clock face). Windows needs ICO, other
// platforms take PNG.
func Icon(goos string) []byte {
	data, err := renderPNG()
	if err != nil {
		slog.Warn("Failed to render tray icon", "error", err)
		return nil
	}
	if goos == "windows" {
		return wrapICO(data, iconSize)
	}
	return data
}

func renderPNG() ([]byte, error) {
	img := image.NewNRGBA(image.Rect(0, 0, iconSize, iconSize))
	face := color.NRGBA{R: 0x2b, G: 0x6c, B: 0xb0, A: 0xff}
	hand := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

	c := float64(iconSize-1) / 2
	r := c - 1
	for y := 0; y < iconSize; y++ {
		for x := 0; x < iconSize; x++ {
			if math.Hypot(float64(x)-c, float64(y)-c) <= r {
				img.SetNRGBA(x, y, face)
			}
		}
	}

	// Hour hand to twelve, minute hand to three
	mid := iconSize / 2
	for y := 6; y <= mid; y++ {
		img.SetNRGBA(mid, y, hand)
		img.SetNRGBA(mid-1, y, hand)
	}
	for x := mid; x <= iconSize-8; x++ {
		img.SetNRGBA(x, mid, hand)
		img.SetNRGBA(x, mid-1, hand)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// wrapICO embeds a PNG in a single-image ICO container (Vista+)
func wrapICO(pngData []byte, size int) []byte {
	buf := new(bytes.Buffer)

	// ICONDIR
	binary.Write(buf, binary.LittleEndian, uint16(0)) // reserved
	binary.Write(buf, binary.LittleEndian, uint16(1)) // type: icon
	binary.Write(buf, binary.LittleEndian, uint16(1)) // image count

	// ICONDIRENTRY
	buf.WriteByte(byte(size))
	buf.WriteByte(byte(size))
	buf.WriteByte(0)                                   // palette
	buf.WriteByte(0)                                   // reserved
	binary.Write(buf, binary.LittleEndian, uint16(1))  // color planes
	binary.Write(buf, binary.LittleEndian, uint16(32)) // bits per pixel
	binary.Write(buf, binary.LittleEndian, uint32(len(pngData)))
	binary.Write(buf, binary.LittleEndian, uint32(6+16)) // data offset

	buf.Write(pngData)
	return buf.Bytes()
}
