// SPDX-License-Identifier: EPL-2.0

package pcmfile

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	"github.com/ik5/adxpbx/audio"
)

// AIFFDecoder decodes AIFF files holding integer PCM.
type AIFFDecoder struct{}

func (AIFFDecoder) Decode(r io.Reader) (audio.Source, error) {
	rs, err := seekable(r)
	if err != nil {
		return nil, fmt.Errorf("reading aiff data: %w", err)
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}
	dec.ReadInfo()

	return newIntSource("aiff", dec, dec.Format(), int(dec.BitDepth))
}
