package glinfo

import (
	"errors"
	"reflect"
	"testing"

	"github.com/glinf/glinf/pkg/logger"
)

func init() { logger.SetGlobalLevel(logger.Disabled) }

var testLog = logger.Default()

// fakeDriver simulates partial driver support: creation succeeds only
// inside [grantMin, grantMax], granted versions can be overridden, and
// live handles are counted to catch leaks across attempts.
type fakeDriver struct {
	refuse      bool
	grantMin    Version
	grantMax    Version
	granted     func(v Version) Version
	failCurrent map[Version]bool

	attempts []Version
	live     int
	maxLive  int
}

func (d *fakeDriver) Open(api API, profile Profile, v Version) (Context, error) {
	d.attempts = append(d.attempts, v)
	if d.refuse || v.Less(d.grantMin) || d.grantMax.Less(v) {
		return nil, errors.New("driver refused")
	}
	g := v
	if d.granted != nil {
		g = d.granted(v)
	}
	d.live++
	if d.live > d.maxLive {
		d.maxLive = d.live
	}
	return &fakeContext{drv: d, api: api, profile: profile, granted: g, failCurrent: d.failCurrent[v]}, nil
}

func (d *fakeDriver) Close() {}

type fakeContext struct {
	drv         *fakeDriver
	api         API
	profile     Profile
	granted     Version
	failCurrent bool
	destroyed   bool

	ints map[uint32]int32
	strs map[uint32]string
	exts []string
}

func (c *fakeContext) API() API                { return c.api }
func (c *fakeContext) Granted() Version        { return c.granted }
func (c *fakeContext) GrantedProfile() Profile { return c.profile }

func (c *fakeContext) MakeCurrent() error {
	if c.failCurrent {
		return errors.New("bind failed")
	}
	return nil
}

func (c *fakeContext) Destroy() {
	if c.destroyed {
		return
	}
	c.destroyed = true
	if c.drv != nil {
		c.drv.live--
	}
}

func (c *fakeContext) QueryInt(key uint32) int32     { return c.ints[key] }
func (c *fakeContext) QueryString(key uint32) string { return c.strs[key] }
func (c *fakeContext) Extensions() []string          { return c.exts }

// Default range against a driver stuck at 3.3: every higher point is
// probed exactly once, top down, and 3.3 is what comes back.
func TestNegotiateBackoff(t *testing.T) {
	d := &fakeDriver{grantMax: Version{Major: 3, Minor: 3}}

	ctx, err := Negotiate(d, Request{Versions: DefaultRange()}, testLog)
	if err != nil {
		t.Fatal(err)
	}

	var want []Version
	for m := 9; m >= 0; m-- {
		want = append(want, Version{Major: 4, Minor: m})
	}
	for m := 9; m >= 3; m-- {
		want = append(want, Version{Major: 3, Minor: m})
	}
	if !reflect.DeepEqual(d.attempts, want) {
		t.Errorf("attempts = %v, want %v", d.attempts, want)
	}
	if v := ctx.Granted(); v != (Version{Major: 3, Minor: 3}) {
		t.Errorf("granted = %v, want 3.3", v)
	}
}

// An explicit version collapses the range to one point: no silent
// substitution, a single attempt, then failure.
func TestNegotiateExactVersion(t *testing.T) {
	d := &fakeDriver{grantMin: Version{Major: 3, Minor: 2}, grantMax: Version{Major: 9, Minor: 9}}

	_, err := Negotiate(d, Request{Versions: Exact(Version{Major: 3, Minor: 0})}, testLog)
	if !errors.Is(err, ErrNoUsableContext) {
		t.Fatalf("err = %v, want ErrNoUsableContext", err)
	}
	if len(d.attempts) != 1 {
		t.Errorf("attempts = %v, want a single one", d.attempts)
	}
}

// A driver that reports a granted version below the attempted one is
// a failed attempt even though creation itself succeeded.
func TestNegotiateRejectsDowngrade(t *testing.T) {
	d := &fakeDriver{
		grantMax: Version{Major: 9, Minor: 9},
		granted:  func(Version) Version { return Version{Major: 3, Minor: 9} },
	}

	_, err := Negotiate(d, Request{Versions: Exact(Version{Major: 4, Minor: 0})}, testLog)
	if !errors.Is(err, ErrNoUsableContext) {
		t.Fatalf("err = %v, want ErrNoUsableContext", err)
	}
	if d.live != 0 {
		t.Errorf("live contexts after rejection = %d, want 0", d.live)
	}
}

// Drivers may silently upgrade; a granted version above the attempted
// one is accepted.
func TestNegotiateAcceptsUpgrade(t *testing.T) {
	d := &fakeDriver{
		grantMax: Version{Major: 9, Minor: 9},
		granted:  func(Version) Version { return Version{Major: 4, Minor: 6} },
	}

	ctx, err := Negotiate(d, Request{Versions: Exact(Version{Major: 3, Minor: 3})}, testLog)
	if err != nil {
		t.Fatal(err)
	}
	if v := ctx.Granted(); v != (Version{Major: 4, Minor: 6}) {
		t.Errorf("granted = %v, want 4.6", v)
	}
}

// A context that cannot be made current triggers backoff, not a hard
// error.
func TestNegotiateMakeCurrentBackoff(t *testing.T) {
	d := &fakeDriver{
		grantMax:    Version{Major: 4, Minor: 9},
		failCurrent: map[Version]bool{{Major: 4, Minor: 9}: true},
	}

	ctx, err := Negotiate(d, Request{Versions: DefaultRange()}, testLog)
	if err != nil {
		t.Fatal(err)
	}
	if v := ctx.Granted(); v != (Version{Major: 4, Minor: 8}) {
		t.Errorf("granted = %v, want 4.8", v)
	}
	if len(d.attempts) != 2 {
		t.Errorf("attempts = %v, want two", d.attempts)
	}
	if d.live != 1 {
		t.Errorf("live contexts = %d, want 1", d.live)
	}
}

// Every failed attempt is destroyed before the next one is built.
func TestNegotiateNoLeak(t *testing.T) {
	d := &fakeDriver{
		grantMax: Version{Major: 9, Minor: 9},
		granted: func(v Version) Version {
			if (Version{Major: 3, Minor: 3}).Less(v) {
				return Version{Major: 3, Minor: 3}
			}
			return v
		},
	}

	if _, err := Negotiate(d, Request{Versions: DefaultRange()}, testLog); err != nil {
		t.Fatal(err)
	}
	if d.maxLive != 1 {
		t.Errorf("max live contexts = %d, want 1", d.maxLive)
	}
	if d.live != 1 {
		t.Errorf("live contexts after success = %d, want 1", d.live)
	}
}

// The probe sequence is strictly decreasing and bounded by
// (majorMax-majorMin+1)*10 points.
func TestNegotiateBoundedTermination(t *testing.T) {
	r := Range{Max: Version{Major: 9, Minor: 9}, Min: Version{Major: 0, Minor: 0}}
	d := &fakeDriver{refuse: true}

	_, err := Negotiate(d, Request{Versions: r}, testLog)
	if !errors.Is(err, ErrNoUsableContext) {
		t.Fatalf("err = %v, want ErrNoUsableContext", err)
	}
	if max := (r.Max.Major - r.Min.Major + 1) * 10; len(d.attempts) > max {
		t.Errorf("attempts = %d, want at most %d", len(d.attempts), max)
	}
	for i := 1; i < len(d.attempts); i++ {
		if !d.attempts[i].Less(d.attempts[i-1]) {
			t.Fatalf("attempt %v after %v is not decreasing", d.attempts[i], d.attempts[i-1])
		}
	}
}
