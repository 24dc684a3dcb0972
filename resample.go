// SPDX-License-Identifier: EPL-2.0

package adxpbx

import (
	"fmt"
	"io"

	"github.com/ik5/adxpbx/audio"
	"github.com/ik5/adxpbx/utils"
)

// Conform wraps src so it plays at rate Hz, mixed down to one channel when
// mono is set. A rate of zero or the source rate itself leaves the rate
// alone; src is returned unchanged when there is nothing to do.
func Conform(src audio.Source, rate int, mono bool) audio.Source {
	if rate > 0 && rate != src.SampleRate() {
		src = audio.NewResampler(src, rate)
	}
	if mono && src.Channels() > 1 {
		src = audio.NewMonoMixer(src)
	}
	return src
}

// ResampleToMono16 resamples src to targetRate, averages its channels and
// collects the result as 16-bit PCM. It returns the samples and the output
// rate.
func ResampleToMono16(src audio.Source, targetRate int, bufferSize int) ([]int16, int, error) {
	mono := Conform(src, targetRate, true)
	if bufferSize < 1 {
		bufferSize = mono.BufSize()
	}

	var pcm16 []int16
	buf := make([]float32, bufferSize)

	for {
		n, err := mono.ReadSamples(buf)
		for _, v := range buf[:n] {
			pcm16 = append(pcm16, utils.Float32ToInt16(v))
		}

		if err == io.EOF {
			return pcm16, mono.SampleRate(), nil
		}
		if err != nil {
			return pcm16, mono.SampleRate(), fmt.Errorf("resampling: %w", err)
		}
	}
}
