/*
Copyright (c) 2025 Diagrid Inc.
Licensed under the MIT License.
*/

package rhythm

import (
	"fmt"

	"github.com/robfig/cron/v3"
)

// parser accepts the 5 field crontab format, optionally prefixed with a
// seconds field, as well as the @every/@hourly style descriptors.
var parser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Parse parses a cron recurrence expression into a Schedule.
//
//	sec   min   hour   day of month   month   day of week
//	0/10  *     *      *              *       *
//
// The seconds field may be omitted. Returns an error if the expression is
// malformed.
func Parse(expr string) (Schedule, error) {
	s, err := parser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse cron expression %q: %w", expr, err)
	}

	return s, nil
}
