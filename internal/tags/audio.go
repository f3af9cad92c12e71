package tags

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	goflac "github.com/go-flac/go-flac"
	"github.com/gopxl/beep/v2/flac"
	"github.com/llehouerou/go-m4a"
	"github.com/llehouerou/go-mp3"
)

// AudioInfo contains audio stream properties.
type AudioInfo struct {
	Duration   time.Duration
	Format     string
	SampleRate int
}

// ReadAudioInfo reads stream properties from headers where the container
// has them, decoding only when it must.
func ReadAudioInfo(path string) (*AudioInfo, error) {
	ft, ok := formatOf(path)
	if !ok {
		return nil, fmt.Errorf("unsupported format: %s", filepath.Ext(path))
	}
	return ft.info(path)
}

func audioInfoMP3(path string) (*AudioInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, err
	}
	rate := d.SampleRate()
	if rate == 0 {
		return nil, errors.New("mp3: invalid sample rate")
	}
	return &AudioInfo{
		Duration:   samplesDuration(max(d.SampleCount(), 0), rate),
		Format:     "MP3",
		SampleRate: rate,
	}, nil
}

// streamInfoLen is the size of a FLAC STREAMINFO block.
const streamInfoLen = 34

func audioInfoFLAC(path string) (*AudioInfo, error) {
	file, err := goflac.ParseFile(path)
	if err != nil {
		// go-flac rejects files with an ID3v2 tag in front.
		return decodeFLAC(path)
	}
	for _, meta := range file.Meta {
		if meta.Type != goflac.StreamInfo || len(meta.Data) < streamInfoLen {
			continue
		}
		// 20 bits of sample rate from byte 10, then 3 bits of channels,
		// 5 bits of depth and 36 bits of total samples.
		d := meta.Data
		rate := int(d[10])<<12 | int(d[11])<<4 | int(d[12])>>4
		samples := int64(d[13]&0x0f)<<32 | int64(binary.BigEndian.Uint32(d[14:18]))
		return &AudioInfo{
			Duration:   samplesDuration(samples, rate),
			Format:     "FLAC",
			SampleRate: rate,
		}, nil
	}
	return decodeFLAC(path)
}

func decodeFLAC(path string) (*AudioInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if err := skipID3v2(f); err != nil {
		return nil, err
	}
	streamer, sf, err := flac.Decode(f)
	if err != nil {
		return nil, err
	}
	defer streamer.Close()

	return &AudioInfo{
		Duration:   sf.SampleRate.D(streamer.Len()),
		Format:     "FLAC",
		SampleRate: int(sf.SampleRate),
	}, nil
}

// Opus granule positions count 48 kHz samples whatever the input rate.
const opusRate = 48000

// oggTail is how far from the end the last Ogg page is searched for.
const oggTail = 64 << 10

var errOggDuration = errors.New("could not determine Ogg duration")

// audioInfoOgg reads the duration from the granule position of the last page.
func audioInfoOgg(path string) (*AudioInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	n := min(fi.Size(), oggTail)
	buf := make([]byte, n)
	if _, err := f.ReadAt(buf, fi.Size()-n); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	// The granule position sits 6 bytes into the page header.
	i := bytes.LastIndex(buf, []byte("OggS"))
	if i < 0 || i+14 > len(buf) {
		return nil, errOggDuration
	}
	granule := int64(binary.LittleEndian.Uint64(buf[i+6 : i+14])) //nolint:gosec // granule fits in int64
	if granule <= 0 {
		return nil, errOggDuration
	}
	return &AudioInfo{
		Duration:   samplesDuration(granule, opusRate),
		Format:     "OPUS",
		SampleRate: opusRate,
	}, nil
}

func audioInfoM4A(path string) (*AudioInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c, err := m4a.Open(f)
	if err != nil {
		return nil, err
	}
	name := "M4A"
	switch c.Codec() {
	case m4a.CodecAAC:
		name = "AAC"
	case m4a.CodecALAC:
		name = "ALAC"
	case m4a.CodecUnknown:
	}
	return &AudioInfo{
		Duration:   c.Duration(),
		Format:     name,
		SampleRate: int(c.SampleRate()),
	}, nil
}

func samplesDuration[T int | int64](samples T, rate int) time.Duration {
	if rate <= 0 {
		return 0
	}
	return time.Duration(float64(samples) / float64(rate) * float64(time.Second))
}

// skipID3v2 positions r after a leading ID3v2 tag, or at the start.
func skipID3v2(r io.ReadSeeker) error {
	var h [10]byte
	if _, err := io.ReadFull(r, h[:]); err != nil || string(h[:3]) != "ID3" {
		_, err := r.Seek(0, io.SeekStart)
		return err
	}
	// The tag size is a syncsafe integer: 7 bits per byte.
	size := int64(h[6])<<21 | int64(h[7])<<14 | int64(h[8])<<7 | int64(h[9])
	_, err := r.Seek(10+size, io.SeekStart)
	return err
}
