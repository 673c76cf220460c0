// SPDX-License-Identifier: EPL-2.0

package wav_test

import (
	"bytes"
	"fmt"

	"github.com/ik5/yaudio/formats/wav"
	"github.com/ik5/yaudio/internal/audiotest"
)

// Example_recording streams two blocks and finalizes the header.
func Example_recording() {
	file := &audiotest.SeekBuffer{}

	w, err := wav.NewPCMWriter(file, 44100)
	if err != nil {
		fmt.Println(err)
		return
	}

	_ = w.Write(make([]int16, 256))
	_ = w.Write(make([]int16, 256))
	_ = w.Close()

	h, _ := wav.ReadHeader(bytes.NewReader(file.Bytes()))
	fmt.Printf("data=%d riff=%d rate=%d\n", h.DataSize, h.RIFFSize, h.SampleRate)
	// Output:
	// data=1024 riff=1060 rate=44100
}

// Example_decoding reads a file back as normalized samples.
func Example_decoding() {
	data := new(bytes.Buffer)
	_ = wav.WriteWAV16(data, 16000, []int16{100, 200, 300, 400, 500})

	src, err := wav.Decoder{}.Decode(data)
	if err != nil {
		fmt.Println(err)
		return
	}

	buf := make([]float32, 10)
	n, _ := src.ReadSamples(buf)

	fmt.Printf("%d Hz, %d channel(s), %d samples\n", src.SampleRate(), src.Channels(), n)
	// Output:
	// 16000 Hz, 1 channel(s), 5 samples
}
