package render

import (
	"strconv"
	"strings"
)

const (
	resetANSI = "\x1b[0m"
	halfBlock = "▀"
)

var precomputedLevels [256]string

func init() {
	for i := range precomputedLevels {
		precomputedLevels[i] = strconv.Itoa(i)
	}
}

// EncodeANSI renders the raster as truecolor terminal rows. Each row of text
// covers two pixel rows: the upper half block takes the top pixel as foreground
// and the bottom pixel as background.
func EncodeANSI(r *Raster) []string {
	width, height := r.Size()
	rows := (height + 1) / 2
	lines := make([]string, rows)
	img := r.Image()

	var builder strings.Builder
	for row := 0; row < rows; row++ {
		builder.Reset()
		builder.Grow(width * 24)
		lastFG, lastBG := -1, -1
		for x := 0; x < width; x++ {
			top := img.PixOffset(x, row*2)
			fg := packRGB(img.Pix[top], img.Pix[top+1], img.Pix[top+2])
			bg := fg
			if row*2+1 < height {
				bottom := img.PixOffset(x, row*2+1)
				bg = packRGB(img.Pix[bottom], img.Pix[bottom+1], img.Pix[bottom+2])
			}
			if fg != lastFG {
				writeColor(&builder, "38", fg)
				lastFG = fg
			}
			if bg != lastBG {
				writeColor(&builder, "48", bg)
				lastBG = bg
			}
			builder.WriteString(halfBlock)
		}
		builder.WriteString(resetANSI)
		lines[row] = builder.String()
	}
	return lines
}

func packRGB(r, g, b uint8) int {
	return int(r)<<16 | int(g)<<8 | int(b)
}

func writeColor(b *strings.Builder, layer string, rgb int) {
	b.WriteString("\x1b[")
	b.WriteString(layer)
	b.WriteString(";2;")
	b.WriteString(precomputedLevels[(rgb>>16)&0xff])
	b.WriteByte(';')
	b.WriteString(precomputedLevels[(rgb>>8)&0xff])
	b.WriteByte(';')
	b.WriteString(precomputedLevels[rgb&0xff])
	b.WriteByte('m')
}
