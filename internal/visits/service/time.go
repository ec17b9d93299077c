package service

import (
	"fmt"
	"time"

	"homeward/pkg/model"
)

// localLayout is the wall-clock format sent by the scheduling form.
const localLayout = "2006-01-02T15:04"

// resolvedTime carries the canonical UTC instant plus the display metadata
// that gets persisted alongside it.
type resolvedTime struct {
	UTC             time.Time
	Local           *string
	Timezone        *string
	TzOffsetMinutes *int
}

// resolveVisitTime converts the requested visit time to UTC. A local
// wall-clock value plus timezone context is canonical when present; a named
// IANA zone wins over a numeric offset. Offsets follow the JS
// getTimezoneOffset convention: minutes to ADD to local time to reach UTC
// (positive west of Greenwich).
func resolveVisitTime(req *model.VisitSchedule) (resolvedTime, error) {
	if req.VisitAtLocal != "" {
		loc, err := resolveLocation(req)
		if err != nil {
			return resolvedTime{}, err
		}

		local, err := time.ParseInLocation(localLayout, req.VisitAtLocal, loc)
		if err != nil {
			return resolvedTime{}, fmt.Errorf("invalid local visit time %q: %w", req.VisitAtLocal, err)
		}

		rt := resolvedTime{
			UTC:   local.UTC(),
			Local: &req.VisitAtLocal,
		}
		if req.Timezone != "" {
			tz := req.Timezone
			rt.Timezone = &tz
		}
		if req.TzOffsetMinutes != nil {
			off := *req.TzOffsetMinutes
			rt.TzOffsetMinutes = &off
		}
		return rt, nil
	}

	if req.VisitAtUTC != "" {
		instant, err := time.Parse(time.RFC3339, req.VisitAtUTC)
		if err != nil {
			return resolvedTime{}, fmt.Errorf("invalid UTC visit time %q: %w", req.VisitAtUTC, err)
		}
		return resolvedTime{UTC: instant.UTC()}, nil
	}

	return resolvedTime{}, fmt.Errorf("visit time is required")
}

func resolveLocation(req *model.VisitSchedule) (*time.Location, error) {
	if req.Timezone != "" {
		loc, err := time.LoadLocation(req.Timezone)
		if err != nil {
			return nil, fmt.Errorf("unknown timezone %q: %w", req.Timezone, err)
		}
		return loc, nil
	}

	if req.TzOffsetMinutes != nil {
		// FixedZone wants seconds east of UTC; the request offset is minutes
		// west, so the sign flips.
		return time.FixedZone("", -*req.TzOffsetMinutes * 60), nil
	}

	return nil, fmt.Errorf("timezone or tz_offset_minutes is required with a local visit time")
}
