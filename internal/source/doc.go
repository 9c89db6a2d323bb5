// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package source opens tree listings by name. A name is a local file path,
// "-" for standard input, or an s3://bucket/key URL for listings kept in S3.
package source
