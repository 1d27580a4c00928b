package utils

import (
	"fmt"
	"sync"
	"time"
)

const (
	// 2025-01-01 00:00:00 UTC，毫秒
	snowflakeEpochMilli int64 = 1735689600000

	nodeBits uint8 = 10
	seqBits  uint8 = 12

	MaxNodeID int64 = -1 ^ (-1 << nodeBits)
	maxSeq    int64 = -1 ^ (-1 << seqBits)

	nodeShift = seqBits
	timeShift = nodeBits + seqBits
)

// Snowflake 生成 63 位单调递增 id：时间戳 | 节点号 | 毫秒内序号。
type Snowflake struct {
	mu     sync.Mutex
	nodeID int64
	lastTS int64
	seq    int64
	now    func() int64
}

func NewSnowflake(nodeID int64) (*Snowflake, error) {
	if nodeID < 0 || nodeID > MaxNodeID {
		return nil, fmt.Errorf("snowflake node id out of range [0,%d]: %d", MaxNodeID, nodeID)
	}
	return &Snowflake{
		nodeID: nodeID,
		now:    func() int64 { return time.Now().UnixMilli() },
	}, nil
}

func (s *Snowflake) NextID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	wall := s.now()
	ts := wall
	if ts < s.lastTS {
		// 时钟回拨：沿用上次时间戳。
		ts = s.lastTS
	}

	if ts == s.lastTS {
		s.seq = (s.seq + 1) & maxSeq
		if s.seq == 0 {
			if wall < s.lastTS {
				// 回拨期间序号用尽：逻辑时钟前进 1ms，不持锁等墙钟追上。
				ts = s.lastTS + 1
			} else {
				ts = s.waitNext(s.lastTS)
			}
		}
	} else {
		s.seq = 0
	}

	s.lastTS = ts
	return ((ts - snowflakeEpochMilli) << timeShift) | (s.nodeID << nodeShift) | s.seq
}

func (s *Snowflake) waitNext(lastTS int64) int64 {
	ts := s.now()
	for ts <= lastTS {
		time.Sleep(100 * time.Microsecond)
		ts = s.now()
	}
	return ts
}

// NodeOf 取出 id 中的节点号。
func NodeOf(id int64) int64 {
	return (id >> nodeShift) & MaxNodeID
}
