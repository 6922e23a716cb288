// Package fitsamples extracts a heart-rate sample stream from a raw FIT
// file, narrowed from the full FIT activity model down to the single
// (timestamp, bpm) series the Workout Scoring Core needs.
package fitsamples

import (
	"bytes"
	"fmt"

	"github.com/muktihari/fit/decoder"
	"github.com/muktihari/fit/profile/mesgdef"
	"github.com/muktihari/fit/profile/typedef"
	"github.com/muktihari/fit/proto"

	"github.com/fitglue/zonecore/pkg/domain/scoring"
)

// invalidHeartRate is the FIT SDK's sentinel for "no heart rate in this
// record" - never a real measurement.
const invalidHeartRate = 0xFF

// ExtractHeartRateSamples decodes a FIT file and returns every record that
// carries a valid heart-rate reading, in file order. It does not sort or
// deduplicate - scoring.Score is responsible for defensive ordering.
func ExtractHeartRateSamples(data []byte) (scoring.WorkoutSamples, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("fitsamples: empty FIT data")
	}

	fitDec := decoder.New(bytes.NewReader(data))

	var samples scoring.WorkoutSamples
	for fitDec.Next() {
		fitData, err := fitDec.Decode()
		if err != nil {
			return nil, fmt.Errorf("fitsamples: decode FIT file: %w", err)
		}

		for _, msg := range fitData.Messages {
			if msg.Num != typedef.MesgNumRecord {
				continue
			}

			sample, ok := parseHeartRateRecord(&msg)
			if ok {
				samples = append(samples, sample)
			}
		}
	}

	if len(samples) == 0 {
		return nil, fmt.Errorf("fitsamples: no heart-rate records found in FIT file")
	}

	return samples, nil
}

func parseHeartRateRecord(msg *proto.Message) (scoring.HeartRateSample, bool) {
	recordMsg := mesgdef.NewRecord(msg)

	if recordMsg.Timestamp.IsZero() {
		return scoring.HeartRateSample{}, false
	}
	if recordMsg.HeartRate == invalidHeartRate {
		return scoring.HeartRateSample{}, false
	}

	return scoring.HeartRateSample{
		Timestamp: recordMsg.Timestamp.UTC(),
		BPM:       int(recordMsg.HeartRate),
	}, true
}
