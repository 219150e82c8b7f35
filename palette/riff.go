package palette

import (
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/image/riff"
)

/*
typedef struct tagLOGPALETTE {
  WORD         palVersion;
  WORD         palNumEntries;
  PALETTEENTRY palPalEntry[1];
} LOGPALETTE;

typedef struct tagPALETTEENTRY {
  BYTE peRed;
  BYTE peGreen;
  BYTE peBlue;
  BYTE peFlags;
} PALETTEENTRY;
*/

const palVersion = 0x0300

var (
	riffType = riff.FourCC{'R', 'I', 'F', 'F'}
	palType  = riff.FourCC{'P', 'A', 'L', ' '}
	dataType = riff.FourCC{'d', 'a', 't', 'a'}
)

// ReadRIFF loads every data chunk of a PAL file into a single palette. PAL
// entries carry no names, so swatches are numbered from 1 in file order.
func ReadRIFF(r io.Reader) (Palette, error) {
	formType, rd, err := riff.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("could not open RIFF stream: %w", err)
	} else if formType != palType {
		return nil, fmt.Errorf("unsupported RIFF content type: %s", string(formType[:]))
	}

	var res Palette
	for chunk := 0; ; chunk++ {
		id, _, data, err := rd.Next()
		if err == io.EOF {
			break
		} else if err != nil {
			return res, fmt.Errorf("could not read chunk #%d: %w", chunk, err)
		}

		if id != dataType {
			continue
		}

		if res, err = readPalette(data, res, chunk); err != nil {
			return res, err
		}
	}

	if len(res) == 0 {
		return nil, ErrEmptyPalette
	}
	return res, nil
}

func readPalette(r io.Reader, res Palette, chunk int) (Palette, error) {
	buf := make([]byte, 4)
	if _, err := io.ReadFull(r, buf); err != nil {
		return res, fmt.Errorf("could not read header from chunk #%d: %w", chunk, err)
	}

	if ver := binary.LittleEndian.Uint16(buf); ver != palVersion {
		return res, fmt.Errorf("unsupported palette version in chunk #%d: %#04x", chunk, ver)
	}

	count := int(binary.LittleEndian.Uint16(buf[2:]))
	for i := range count {
		if _, err := io.ReadFull(r, buf); err != nil {
			return res, fmt.Errorf("could not read color %d/%d from chunk #%d: %w", i, count, chunk, err)
		}

		n := len(res) + 1
		res = append(res, Swatch{
			ID:    n,
			Name:  fmt.Sprintf("Color %d", n),
			Color: RGB{buf[0], buf[1], buf[2]},
		})
	}

	return res, nil
}

// WriteRIFF stores p as a single-chunk PAL file and returns the number of
// bytes written.
func WriteRIFF(w io.Writer, p Palette) (int64, error) {
	if len(p) > 0xFFFF {
		return 0, fmt.Errorf("too many colors for a PAL file: %d", len(p))
	}

	chunkSize := 4 + len(p)*4 // palVersion + palNumEntries + 4 bytes/color
	buf := make([]byte, 0, 12+8+chunkSize)

	buf = append(buf, riffType[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(4+8+chunkSize))
	buf = append(buf, palType[:]...)

	buf = append(buf, dataType[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(chunkSize))
	buf = binary.LittleEndian.AppendUint16(buf, palVersion)
	buf = binary.LittleEndian.AppendUint16(buf, uint16(len(p)))
	for _, s := range p {
		buf = append(buf, s.Color.R, s.Color.G, s.Color.B, 0x00)
	}

	n, err := w.Write(buf)
	if err != nil {
		return int64(n), fmt.Errorf("could not save palette: %w", err)
	} else if n != len(buf) {
		return int64(n), fmt.Errorf("wrote only %d/%d bytes", n, len(buf))
	}
	return int64(n), nil
}
