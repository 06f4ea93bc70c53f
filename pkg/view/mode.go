package view

import (
	"fmt"
	"strings"
)

// Mode selects which directions the panel shows.
type Mode int

const (
	ModeAll Mode = iota
	ModeDownloadOnly
	ModeUploadOnly
)

func (m Mode) String() string {
	switch m {
	case ModeAll:
		return "all"
	case ModeDownloadOnly:
		return "download"
	case ModeUploadOnly:
		return "upload"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

func (m Mode) Valid() bool {
	return m == ModeAll || m == ModeDownloadOnly || m == ModeUploadOnly
}

func (m Mode) ShowsDownload() bool {
	return m == ModeAll || m == ModeDownloadOnly
}

func (m Mode) ShowsUpload() bool {
	return m == ModeAll || m == ModeUploadOnly
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "all", "":
		return ModeAll, nil
	case "download", "down", "download_only":
		return ModeDownloadOnly, nil
	case "upload", "up", "upload_only":
		return ModeUploadOnly, nil
	default:
		return ModeAll, fmt.Errorf("unknown view mode %q", s)
	}
}
