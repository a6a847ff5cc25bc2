package ingredient

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/sarchlab/distill/chem"
)

// maxIDLength bounds the byte length of an id in the structured record.
const maxIDLength = 32767 * 3

// WriteBinary writes the structured record: the cation id, the anion id and
// the concentration as a big-endian float32. Ids are length prefixed with an
// unsigned varint.
func (p *IonPair) WriteBinary(w io.Writer) error {
	buf := make([]byte, 0, len(p.cationID)+len(p.anionID)+2*binary.MaxVarintLen32+4)
	buf = appendString(buf, p.cationID)
	buf = appendString(buf, p.anionID)
	buf = binary.BigEndian.AppendUint32(buf, math.Float32bits(p.concentration))

	_, err := w.Write(buf)

	return err
}

// ReadBinary reads a structured record written by WriteBinary. Ids are
// resolved against the registry but are not validated.
func ReadBinary(r io.Reader, reg chem.Registry) (*IonPair, error) {
	br := byteReader{r: r}

	cationID, err := readString(br)
	if err != nil {
		return nil, fmt.Errorf("reading cation: %w", err)
	}

	anionID, err := readString(br)
	if err != nil {
		return nil, fmt.Errorf("reading anion: %w", err)
	}

	var bits uint32
	if err := binary.Read(r, binary.BigEndian, &bits); err != nil {
		return nil, fmt.Errorf("reading concentration: %w", err)
	}

	return resolveIonPair(reg, cationID, anionID, math.Float32frombits(bits)), nil
}

func appendString(buf []byte, s string) []byte {
	buf = binary.AppendUvarint(buf, uint64(len(s)))
	return append(buf, s...)
}

func readString(br byteReader) (string, error) {
	n, err := binary.ReadUvarint(br)
	if err != nil {
		return "", err
	}

	if n > maxIDLength {
		return "", errors.New("id too long")
	}

	b := make([]byte, n)
	if _, err := io.ReadFull(br.r, b); err != nil {
		return "", err
	}

	return string(b), nil
}

// byteReader reads one byte at a time so that nothing past the varint is
// consumed from the underlying reader.
type byteReader struct {
	r io.Reader
}

func (b byteReader) ReadByte() (byte, error) {
	var one [1]byte
	if _, err := io.ReadFull(b.r, one[:]); err != nil {
		return 0, err
	}

	return one[0], nil
}
