package stream

import (
	"bytes"
	"strconv"
	"time"

	"github.com/valyala/fastjson"
	"go.ytsaurus.tech/library/go/core/xerrors"
)

type messageKind int

const (
	kindUnknown messageKind = iota
	kindStatus
	kindDelete
	kindScrubGeo
	kindLimit
	kindWarning
	kindDisconnect
)

type message struct {
	kind       messageKind
	status     *Status
	deletion   *StatusDeletionNotice
	scrubGeo   *ScrubGeoNotice
	limit      int64
	warning    *StallWarning
	disconnect *DisconnectNotice
}

var parserPool fastjson.ParserPool

// parseMessage classifies one line of the stream. Only the fields needed for
// dispatching are extracted, status payloads stay as raw bytes.
func parseMessage(line []byte) (*message, error) {
	p := parserPool.Get()
	defer parserPool.Put(p)

	v, err := p.ParseBytes(line)
	if err != nil {
		return nil, xerrors.Errorf("malformed stream message: %w", err)
	}
	switch {
	case v.Exists("delete"):
		return &message{
			kind: kindDelete,
			deletion: &StatusDeletionNotice{
				StatusID: v.GetInt64("delete", "status", "id"),
				UserID:   v.GetInt64("delete", "status", "user_id"),
			},
		}, nil
	case v.Exists("scrub_geo"):
		return &message{
			kind: kindScrubGeo,
			scrubGeo: &ScrubGeoNotice{
				UserID:       v.GetInt64("scrub_geo", "user_id"),
				UpToStatusID: v.GetInt64("scrub_geo", "up_to_status_id"),
			},
		}, nil
	case v.Exists("limit"):
		return &message{kind: kindLimit, limit: v.GetInt64("limit", "track")}, nil
	case v.Exists("warning"):
		return &message{
			kind: kindWarning,
			warning: &StallWarning{
				Code:        string(v.GetStringBytes("warning", "code")),
				Message:     string(v.GetStringBytes("warning", "message")),
				PercentFull: v.GetInt("warning", "percent_full"),
			},
		}, nil
	case v.Exists("disconnect"):
		return &message{
			kind: kindDisconnect,
			disconnect: &DisconnectNotice{
				Code:       v.GetInt("disconnect", "code"),
				StreamName: string(v.GetStringBytes("disconnect", "stream_name")),
				Reason:     string(v.GetStringBytes("disconnect", "reason")),
			},
		}, nil
	case v.Exists("text") && v.Exists("id"):
		createdAt, err := statusTime(v)
		if err != nil {
			return nil, xerrors.Errorf("status %d: %w", v.GetInt64("id"), err)
		}
		return &message{
			kind: kindStatus,
			status: &Status{
				ID:        v.GetInt64("id"),
				Text:      string(v.GetStringBytes("text")),
				CreatedAt: createdAt,
				Raw:       line,
			},
		}, nil
	default:
		return &message{kind: kindUnknown}, nil
	}
}

// statusTime reads created_at, falling back to timestamp_ms.
func statusTime(v *fastjson.Value) (time.Time, error) {
	if raw := v.GetStringBytes("created_at"); len(raw) > 0 {
		ts, err := time.Parse(time.RubyDate, string(raw))
		if err == nil {
			return ts, nil
		}
	}
	if raw := v.GetStringBytes("timestamp_ms"); len(raw) > 0 {
		ms, err := strconv.ParseInt(string(raw), 10, 64)
		if err == nil {
			return time.UnixMilli(ms), nil
		}
	}
	return time.Time{}, xerrors.New("neither created_at nor timestamp_ms is a valid time")
}

// trimLine drops the CRLF delimiter and surrounding spaces. Keep-alive lines become empty.
func trimLine(line []byte) []byte {
	return bytes.TrimSpace(line)
}
