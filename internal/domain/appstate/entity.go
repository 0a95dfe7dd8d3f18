package appstate

import (
	"time"

	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/profile"
)

// Keys under which a device's state is stored.
const (
	KeyToken       = "token"
	KeyAuthState   = "authState"
	KeyPunchRecord = "punchRecord"
)

// PunchRecordVersion is the only punch record schema this service reads.
const PunchRecordVersion = 1

// AllKeys lists every key a logout clears.
var AllKeys = []string{KeyToken, KeyAuthState, KeyPunchRecord}

type AuthState struct {
	IsAuthenticated bool            `json:"isAuthenticated"`
	Profile         profile.Profile `json:"profile"`
}

// PunchRecord is the device's memory of an open punch-in.
type PunchRecord struct {
	Version             int        `json:"version"`
	IsPunchedIn         bool       `json:"isPunchedIn"`
	PunchInID           string     `json:"punchInId,omitempty"`
	PunchInTime         *time.Time `json:"punchInTime,omitempty"`
	PunchInLocationName string     `json:"punchInLocationName,omitempty"`
}

// Entry is one stored key of one device.
type Entry struct {
	DeviceID  string
	Key       string
	Value     []byte
	UpdatedAt time.Time
}
