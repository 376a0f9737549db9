// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import "time"

// TimeConfiguration is used to configure time services
type TimeConfiguration struct {
	// FramesPerSecond caps how often the event loop polls.
	// To unlimit, set to 0
	FramesPerSecond int
}

// PollInterval is the time between two event polls, zero when unlimited.
func (t TimeConfiguration) PollInterval() time.Duration {
	if t.FramesPerSecond <= 0 {
		return 0
	}
	return time.Second / time.Duration(t.FramesPerSecond)
}
