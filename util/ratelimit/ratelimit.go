package ratelimit

import (
	"time"

	"github.com/cindra-project/cindra-tokenomics/util"
)

type info struct {
	Count     int
	LastClear int64
	BanEnds   int64
}

func New(maxPerMinute int) *Limit {
	return &Limit{
		maxPerMinute: maxPerMinute,
		info:         make(map[string]*info),
	}
}

type Limit struct {
	maxPerMinute int
	info         map[string]*info

	util.RWMutex
}

// CanAct charges the ip for amount actions. Exceeding the per-minute budget
// bans the ip for two minutes.
func (l *Limit) CanAct(ip string, amount int) bool {
	t := time.Now().Unix()

	l.Lock()
	defer l.Unlock()

	inf := l.info[ip]
	if inf == nil {
		inf = &info{}
		l.info[ip] = inf
	}

	if inf.BanEnds > t {
		return false
	}
	if inf.LastClear+60 < t {
		inf.LastClear = t
		inf.Count = 0
	}

	inf.Count += amount

	if inf.Count > l.maxPerMinute {
		inf.BanEnds = t + 120
		return false
	}
	return true
}
