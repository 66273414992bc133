package models

import (
	"time"

	"explorer.navitia.org/internal/clock"
)

// ResponseModel Base response structure that can be reused
type ResponseModel struct {
	Code        int         `json:"code"`
	CurrentTime int64       `json:"currentTime"`
	Data        interface{} `json:"data,omitempty"`
	Text        string      `json:"text"`
	Version     int         `json:"version"`
}

// NewOKResponseWithClock creates a successful response using the provided clock.
func NewOKResponseWithClock(data interface{}, c clock.Clock) ResponseModel {
	return NewResponseWithClock(200, data, "OK", c)
}

// NewOKResponse is a helper function that returns a successful response.
// Deprecated: Use NewOKResponseWithClock for testable code.
func NewOKResponse(data interface{}) ResponseModel {
	return NewResponse(200, data, "OK")
}

// NewErrorResponseWithClock creates an error response carrying no data.
func NewErrorResponseWithClock(code int, text string, c clock.Clock) ResponseModel {
	return NewResponseWithClock(code, nil, text, c)
}

func NewListResponseWithClock(list interface{}, disruptions interface{}, c clock.Clock) ResponseModel {
	data := map[string]interface{}{
		"limitExceeded": false,
		"list":          list,
		"disruptions":   disruptions,
	}
	return NewOKResponseWithClock(data, c)
}

func NewEntryResponseWithClock(entry interface{}, c clock.Clock) ResponseModel {
	data := map[string]interface{}{
		"entry": entry,
	}
	return NewOKResponseWithClock(data, c)
}

// NewBoardResponseWithClock wraps a departures or arrivals board together with
// the disruptions that apply to it.
func NewBoardResponseWithClock(events interface{}, stopID string, disruptions interface{}, c clock.Clock) ResponseModel {
	entryData := map[string]interface{}{
		"stopId":      stopID,
		"events":      events,
		"disruptions": disruptions,
	}
	data := map[string]interface{}{
		"entry": entryData,
	}
	return NewOKResponseWithClock(data, c)
}

// NewResponseWithClock creates a standard response using the provided clock.
func NewResponseWithClock(code int, data interface{}, text string, c clock.Clock) ResponseModel {
	return ResponseModel{
		Code:        code,
		CurrentTime: ResponseCurrentTimeWithClock(c),
		Data:        data,
		Text:        text,
		Version:     2,
	}
}

// NewResponse Helper function to create a standard response
// Deprecated: Use NewResponseWithClock for testable code.
func NewResponse(code int, data interface{}, text string) ResponseModel {
	return ResponseModel{
		Code:        code,
		CurrentTime: ResponseCurrentTime(),
		Data:        data,
		Text:        text,
		Version:     2,
	}
}

// ResponseCurrentTimeWithClock returns the current time from the provided clock as Unix milliseconds.
func ResponseCurrentTimeWithClock(c clock.Clock) int64 {
	return c.NowUnixMilli()
}

// ResponseCurrentTime returns the current system time as Unix milliseconds.
// Deprecated: Use ResponseCurrentTimeWithClock for testable code.
func ResponseCurrentTime() int64 {
	return time.Now().UnixNano() / int64(time.Millisecond)
}
