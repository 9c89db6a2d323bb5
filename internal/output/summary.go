// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/tfctl/treediff/internal/differ"
)

// Summary formats stats as a single line, e.g.
// "Summary: 2 deleted (1.5 KiB), 1 inserted (3.5 KiB) in 1 hunk".
func Summary(s differ.Stats) string {
	hunks := "hunks"
	if s.Hunks == 1 {
		hunks = "hunk"
	}
	return fmt.Sprintf("Summary: %s deleted (%s), %s inserted (%s) in %s %s",
		humanize.Comma(int64(s.Deleted)), humanBytes(s.DeletedBytes),
		humanize.Comma(int64(s.Inserted)), humanBytes(s.InsertedBytes),
		humanize.Comma(int64(s.Hunks)), hunks)
}

// humanBytes humanizes a byte count. Negative totals only come from malformed
// sizes but are still shown.
func humanBytes(n int64) string {
	if n < 0 {
		return "-" + humanize.IBytes(uint64(-n))
	}
	return humanize.IBytes(uint64(n))
}
