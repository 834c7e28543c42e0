package listing

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/arloliu/esync/internal/options"
	"github.com/arloliu/esync/sid"
	"github.com/arloliu/esync/trace"
)

// Delimiter separates the fields of a listing line.
const Delimiter = '|'

// Write renders list as an Enhanced SYNC listing to w.
//
// IDs are written in collection order and segments in start time order. An
// identifier that is not an FDSN source identifier leaves the network,
// station, location and channel fields empty.
func Write(w io.Writer, list *trace.List, opts ...Option) error {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return err
	}

	date := cfg.now().Format("2006,002")

	bw := bufio.NewWriter(w)
	line := make([]byte, 0, 160)

	line = append(line, cfg.label...)
	line = append(line, Delimiter)
	line = append(line, date...)
	line = append(line, '\n')
	if _, err := bw.Write(line); err != nil {
		return fmt.Errorf("writing listing header: %w", err)
	}

	if list != nil {
		for _, id := range list.IDs() {
			nslc, err := sid.Parse(id.SID)
			if err != nil {
				cfg.logger.Warn("cannot parse source identifier", "sid", id.SID, "error", err)
			}

			quality := QualityCode(id.PubVersion)

			for _, seg := range id.Segments {
				line = appendSegment(line[:0], nslc, seg, quality, date)
				if _, err := bw.Write(line); err != nil {
					return fmt.Errorf("writing listing line for %s: %w", id.SID, err)
				}
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing listing: %w", err)
	}

	return nil
}

func appendSegment(b []byte, nslc sid.NSLC, seg *trace.Segment, quality, date string) []byte {
	b = appendField(b, nslc.Network)
	b = appendField(b, nslc.Station)
	b = appendField(b, nslc.Location)
	b = appendField(b, nslc.Channel)
	b = appendField(b, seg.Start.SEEDOrdinal())
	b = appendField(b, seg.End.SEEDOrdinal())
	b = append(b, Delimiter)
	b = strconv.AppendFloat(b, seg.SampleRate, 'g', 10, 64)
	b = append(b, Delimiter)
	b = strconv.AppendInt(b, seg.SampleCount, 10)
	b = append(b, Delimiter, Delimiter, Delimiter)
	b = appendField(b, quality)
	if seg.HasData() {
		b = append(b, DigestHex(seg.Samples)...)
	}
	b = append(b, Delimiter, Delimiter, Delimiter)
	b = append(b, date...)

	return append(b, '\n')
}

func appendField(b []byte, s string) []byte {
	b = append(b, s...)

	return append(b, Delimiter)
}

