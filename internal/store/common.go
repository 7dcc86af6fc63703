package store

import (
	"encoding/binary"

	"github.com/agora-courts/agora-courts/internal/common"
)

const (
	ErrFailedBatchCommit = "failed to commit batch: %w"
)

// Prefix constants for all record types
const (
	prefixCourt byte = iota + 1
	prefixDispute
	prefixCase
	prefixVoterRecord
	prefixBalance
	prefixReceipt
)

// PrefixToString converts a prefix byte to a string
func PrefixToString(p byte) string {
	switch p {
	case prefixCourt:
		return "court"
	case prefixDispute:
		return "dispute"
	case prefixCase:
		return "case"
	case prefixVoterRecord:
		return "voterRecord"
	case prefixBalance:
		return "balance"
	case prefixReceipt:
		return "receipt"
	default:
		return "unknown"
	}
}

// keyBuilder appends length-prefixed strings and big-endian ids so that keys
// of one scope share a prefix and dispute ids iterate in numeric order.
type keyBuilder []byte

func newKey(prefix byte) keyBuilder {
	return keyBuilder{prefix}
}

func (k keyBuilder) str(s string) keyBuilder {
	k = binary.AppendUvarint(k, uint64(len(s)))
	return append(k, s...)
}

func (k keyBuilder) id(id common.DisputeID) keyBuilder {
	return binary.BigEndian.AppendUint64(k, uint64(id))
}

func courtKey(court common.CourtID) []byte {
	return newKey(prefixCourt).str(string(court))
}

func disputeKey(court common.CourtID, id common.DisputeID) []byte {
	return newKey(prefixDispute).str(string(court)).id(id)
}

func caseKey(court common.CourtID, id common.DisputeID, party common.ParticipantID) []byte {
	return newKey(prefixCase).str(string(court)).id(id).str(string(party))
}

func voterRecordKey(court common.CourtID, participant common.ParticipantID) []byte {
	return newKey(prefixVoterRecord).str(string(court)).str(string(participant))
}

func balanceKey(owner string, mint common.Mint) []byte {
	return newKey(prefixBalance).str(owner).str(string(mint))
}

func receiptKey(court common.CourtID, id common.DisputeID, participant common.ParticipantID) []byte {
	return newKey(prefixReceipt).str(string(court)).id(id).str(string(participant))
}

// prefixEnd returns the smallest key greater than every key starting with p.
func prefixEnd(p []byte) []byte {
	end := append([]byte(nil), p...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
