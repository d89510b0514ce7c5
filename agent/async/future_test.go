package async

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	findy "github.com/findy-network/findy-wrapper-go"
	"github.com/findy-network/findy-wrapper-go/dto"
	"github.com/lainio/err2"
)

func fillChannel(handle int, ch findy.Channel) {
	r := dto.Result{}
	r.SetHandle(handle)
	ch <- r
}

func fillChannelWithError(ch findy.Channel) {
	ch <- dto.Result{
		Er: dto.Err{
			Error: "TEST_ERROR",
			Code:  100,
		},
	}
}

func TestAwait(t *testing.T) {
	ch := make(findy.Channel, 1)
	fillChannel(7, ch)

	r, err := Await(context.Background(), ch)
	if err != nil {
		t.Errorf("Await() err = %v, want nil", err)
	}
	if r.Handle() != 7 {
		t.Errorf("Await() handle = %v, want 7", r.Handle())
	}
}

func TestAwait_ErrorAsValue(t *testing.T) {
	// an SDK error must come back inspectable, never thrown, so callers
	// can branch on the libindy code
	ch := make(findy.Channel, 1)
	ch <- dto.Result{
		Er: dto.Err{
			Error: "wallet access failed",
			Code:  3690,
		},
	}

	r, err := Await(context.Background(), ch)
	if err == nil {
		t.Fatal("Await() err = nil, want error")
	}
	if r.ErrCode() != 3690 {
		t.Errorf("Await() code = %v, want 3690", r.ErrCode())
	}
}

func TestAwait_Deadline(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	ch := make(findy.Channel) // never filled
	r, err := Await(ctx, ch)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Await() err = %v, want deadline exceeded", err)
	}
	if r.ErrCode() != 0 {
		t.Errorf("Await() code = %v, want 0", r.ErrCode())
	}
}

func TestFuture_GetValue_And_SetChan(t *testing.T) {
	const handleValueToTest = 1
	result := dto.Result{Data: dto.Data{Handle: handleValueToTest}}

	myFuture := Future{}
	ch := make(findy.Channel, 1)

	tests := []struct {
		name string
		want interface{}
	}{
		{"1st", nil},
		{"2nd", result},
		{"3rd", result},
		{"4th", result},
		{"5th", result},
		{"6th", result},
	}
	for i, tt := range tests {
		if i == 1 || i == 3 { // write value to channel
			myFuture.SetChan(ch)
			fillChannel(handleValueToTest, ch)
		}
		t.Run(tt.name, func(t *testing.T) {
			f := &myFuture
			if got := f.value(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Future.value() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFuture_WithErrorResult(t *testing.T) {
	readValue := func(f *Future) {
		defer err2.Catch(func(err error) {
			// eat the error
		})
		f.value()
	}

	result := dto.Result{
		Er: dto.Err{
			Error: "TEST_ERROR",
			Code:  100,
		},
	}

	myFuture := Future{}
	ch := make(findy.Channel, 1)

	tests := []struct {
		name string
		want interface{}
	}{
		{"1st", result},
		{"2nd", result},
	}
	for i, tt := range tests {
		if i == 0 {
			myFuture.SetChan(ch)
			fillChannelWithError(ch)
			readValue(&myFuture)
		}
		t.Run(tt.name, func(t *testing.T) {
			if got := myFuture.value(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Future.value() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFuture_GetInt(t *testing.T) {
	tests := []struct {
		name  string
		v     interface{}
		wantI int
	}{
		{"zero", dto.Result{}, 0},
		{"1st", dto.Result{Data: dto.Data{Handle: 1}}, 1},
		{"2nd", dto.Result{Data: dto.Data{Handle: 2}}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &Future{V: tt.v}
			if gotI := f.Int(); gotI != tt.wantI {
				t.Errorf("Future.Int() = %v, want %v", gotI, tt.wantI)
			}
		})
	}
}

func TestFuture_GetStrs(t *testing.T) {
	tests := []struct {
		name   string
		v      interface{}
		wantS1 string
		wantS2 string
		wantS3 string
	}{
		{"zero", dto.Result{}, "", "", ""},
		{"two", dto.Result{Data: dto.Data{Str1: "str1", Str2: "str2"}}, "str1", "str2", ""},
		{"all", dto.Result{Data: dto.Data{Str1: "str1", Str2: "str2", Str3: "str3"}}, "str1", "str2", "str3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &Future{V: tt.v}
			gotS1, gotS2, gotS3 := f.Strs()
			if gotS1 != tt.wantS1 || gotS2 != tt.wantS2 || gotS3 != tt.wantS3 {
				t.Errorf("Future.Strs() = %v, %v, %v, want %v, %v, %v",
					gotS1, gotS2, gotS3, tt.wantS1, tt.wantS2, tt.wantS3)
			}
		})
	}
}
