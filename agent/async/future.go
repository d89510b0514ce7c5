// Package async awaits findy-wrapper channel results. The wrapper's API is
// natively asynchronous; every caller in this repo wants the call to complete
// before it proceeds, so the Future here is consume-once and blocking.
package async

import (
	"context"
	"sync"

	findy "github.com/findy-network/findy-wrapper-go"
	"github.com/findy-network/findy-wrapper-go/dto"
	"github.com/lainio/err2/try"
)

// Await consumes one channel result under the context deadline. The SDK
// error comes back as a value, never thrown, so the caller can branch on
// its code before deciding how to surface it.
func Await(ctx context.Context, ch findy.Channel) (dto.Result, error) {
	select {
	case r := <-ch:
		return r, r.Err()
	case <-ctx.Done():
		return dto.Result{}, ctx.Err()
	}
}

type State uint32

const (
	empty State = iota
	triggered
	Consumed
)

type Future struct {
	On State
	V  interface{}
	ch findy.Channel
	lo sync.Mutex
}

// NewFuture changes the existing findy.Channel to a Future.
func NewFuture(ch findy.Channel) *Future {
	f := &Future{}
	f.SetChan(ch)
	return f
}

// SetChan sets the existing findy.Channel to this Future.
func (f *Future) SetChan(ch findy.Channel) {
	f.lo.Lock()
	defer f.lo.Unlock()
	if f.On == triggered {
		// eat off the previous uneaten channel data
		_ = f.consume()
	}
	f.ch = ch
	f.On = triggered
}

// value returns actual result object from findy.Channel. It throws an err2
// exception if error happens.
func (f *Future) value() interface{} {
	f.lo.Lock()
	defer f.lo.Unlock()
	return f.consume()
}

func (f *Future) consume() interface{} {
	if f.On == triggered {
		r := <-f.ch
		f.On = Consumed
		f.V = r
		try.To(r.Err())
	}
	return f.V
}

func (f *Future) Result() (dtoResult *dto.Result) {
	pseudo := f.value()
	if pseudo != nil {
		r := pseudo.(dto.Result)
		dtoResult = &r
	}
	return
}

func (f *Future) Int() (i int) {
	r := f.Result()
	if r != nil {
		i = r.Handle()
	}
	return
}

func (f *Future) Strs() (s1, s2, s3 string) {
	r := f.Result()
	if r != nil {
		s1 = r.Str1()
		s2 = r.Str2()
		s3 = r.Str3()
	}
	return
}

func (f *Future) Str1() string {
	str1, _, _ := f.Strs()
	return str1
}

func (f *Future) Str2() string {
	_, str2, _ := f.Strs()
	return str2
}

func (f *Future) Yes() (y bool) {
	r := f.Result()
	if r != nil {
		y = r.Yes()
	}
	return
}
