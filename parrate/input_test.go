package parrate_test

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/meenmo/curvekit/market"
	"github.com/meenmo/curvekit/parrate"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decs(ss ...string) []decimal.Decimal {
	out := make([]decimal.Decimal, len(ss))
	for i, s := range ss {
		out[i] = dec(s)
	}
	return out
}

func usdLibor(t *testing.T) *parrate.CurveInput {
	t.Helper()
	in, err := parrate.New(
		"USD-LIBOR",
		[]market.Tenor{market.Tenor6M, market.Tenor1Y, market.Tenor5Y},
		[]market.InstrumentType{market.MoneyMarket, market.MoneyMarket, market.Swap},
		decs("0.010", "0.012", "0.020"),
		market.USDLIBOR3M,
	)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	return in
}

func assertRates(t *testing.T, got []decimal.Decimal, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("rate count mismatch: got %d want %d", len(got), len(want))
	}
	for i := range got {
		if !got[i].Equal(dec(want[i])) {
			t.Fatalf("rate[%d] mismatch: got %s want %s", i, got[i], want[i])
		}
	}
}

func TestNew_USDLibor(t *testing.T) {
	t.Parallel()

	in := usdLibor(t)
	if in.NumberOfPoints() != 3 {
		t.Fatalf("NumberOfPoints: got %d want 3", in.NumberOfPoints())
	}
	if in.Name() != "USD-LIBOR" {
		t.Fatalf("Name mismatch: got %s", in.Name())
	}
	if in.Convention() != market.USDLIBOR3M {
		t.Fatalf("Convention mismatch: got %v", in.Convention())
	}
	assertRates(t, in.ParRates(), "0.010", "0.012", "0.020")

	n, err := in.Node(2)
	if err != nil {
		t.Fatalf("Node(2) error: %v", err)
	}
	if n.Tenor != market.Tenor5Y || n.InstrumentType != market.Swap || !n.ParRate.Equal(dec("0.02")) {
		t.Fatalf("Node(2) mismatch: got %v", n)
	}
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	tenors := []market.Tenor{market.Tenor6M, market.Tenor1Y, market.Tenor5Y}
	types := []market.InstrumentType{market.MoneyMarket, market.MoneyMarket, market.Swap}
	rates := decs("0.010", "0.012", "0.020")

	cases := []struct {
		name       string
		curve      market.CurveName
		tenors     []market.Tenor
		types      []market.InstrumentType
		rates      []decimal.Decimal
		convention market.Convention
		kind       error
		field      string
	}{
		{"empty name", "", tenors, types, rates, market.USDLIBOR3M, market.ErrNullArgument, "name"},
		{"nil tenors", "X", nil, types, rates, market.USDLIBOR3M, market.ErrNullArgument, "tenors"},
		{"nil types", "X", tenors, nil, rates, market.USDLIBOR3M, market.ErrNullArgument, "instrumentTypes"},
		{"nil rates", "X", tenors, types, nil, market.USDLIBOR3M, market.ErrNullArgument, "parRates"},
		{"zero convention", "X", tenors, types, rates, market.Convention{}, market.ErrNullArgument, "convention"},
		// null checks run before the structural ones
		{"nil rates and empty tenors", "X", []market.Tenor{}, types, nil, market.USDLIBOR3M, market.ErrNullArgument, "parRates"},
		{"zero points", "X", []market.Tenor{}, []market.InstrumentType{}, []decimal.Decimal{}, market.USDLIBOR3M, market.ErrInvalidArgument, ""},
		{"short rates", "X", tenors, types, rates[:2], market.USDLIBOR3M, market.ErrInvalidArgument, ""},
		{"short types", "X", tenors, types[:1], rates, market.USDLIBOR3M, market.ErrInvalidArgument, ""},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			in, err := parrate.New(tc.curve, tc.tenors, tc.types, tc.rates, tc.convention)
			if in != nil {
				t.Fatalf("expected nil instance, got %v", in)
			}
			if !errors.Is(err, tc.kind) {
				t.Fatalf("error kind mismatch: got %v want %v", err, tc.kind)
			}
			var argErr *market.ArgumentError
			if !errors.As(err, &argErr) {
				t.Fatalf("expected *market.ArgumentError, got %T", err)
			}
			if argErr.Field != tc.field {
				t.Fatalf("field mismatch: got %q want %q", argErr.Field, tc.field)
			}
		})
	}
}

func TestNew_ValidationMessages(t *testing.T) {
	t.Parallel()

	_, err := parrate.New("X", []market.Tenor{}, []market.InstrumentType{}, []decimal.Decimal{}, market.USDLIBOR3M)
	if err == nil || !strings.Contains(err.Error(), "Cannot have zero points") {
		t.Fatalf("zero points message mismatch: %v", err)
	}

	_, err = parrate.New("X",
		[]market.Tenor{market.Tenor6M, market.Tenor1Y, market.Tenor5Y},
		[]market.InstrumentType{market.MoneyMarket, market.MoneyMarket, market.Swap},
		decs("0.01", "0.012"),
		market.USDLIBOR3M)
	if err == nil || !strings.Contains(err.Error(), "Points do not line up") {
		t.Fatalf("alignment message mismatch: %v", err)
	}
}

func TestDefensiveCopies(t *testing.T) {
	t.Parallel()

	tenors := []market.Tenor{market.Tenor6M, market.Tenor1Y}
	types := []market.InstrumentType{market.MoneyMarket, market.Swap}
	rates := decs("0.01", "0.02")
	in, err := parrate.New("X", tenors, types, rates, market.USDSOFROIS)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	// Mutating caller slices must not leak into the instance.
	tenors[0] = market.Tenor10Y
	types[0] = market.FRA
	rates[0] = dec("9")
	if in.Tenors()[0] != market.Tenor6M || in.InstrumentTypes()[0] != market.MoneyMarket {
		t.Fatalf("constructor did not copy tenors/types")
	}
	assertRates(t, in.ParRates(), "0.01", "0.02")

	// Mutating returned slices must not leak either.
	in.Tenors()[1] = market.Tenor10Y
	in.InstrumentTypes()[1] = market.FRA
	in.ParRates()[1] = dec("9")
	in.Nodes()[1].ParRate = dec("9")
	if in.Tenors()[1] != market.Tenor1Y || in.InstrumentTypes()[1] != market.Swap {
		t.Fatalf("accessors did not copy tenors/types")
	}
	assertRates(t, in.ParRates(), "0.01", "0.02")
}

func TestParallelShift(t *testing.T) {
	t.Parallel()

	in := usdLibor(t)
	shifted := in.ParallelShift(dec("0.001"))

	assertRates(t, shifted.ParRates(), "0.011", "0.013", "0.021")
	assertRates(t, in.ParRates(), "0.010", "0.012", "0.020")

	if shifted.Name() != in.Name() || shifted.Convention() != in.Convention() {
		t.Fatalf("ParallelShift changed name or convention")
	}
	for i, tenor := range in.Tenors() {
		if shifted.Tenors()[i] != tenor || shifted.InstrumentTypes()[i] != in.InstrumentTypes()[i] {
			t.Fatalf("ParallelShift changed node %d", i)
		}
	}
	if shifted.Equal(in) {
		t.Fatalf("shifted input should differ from source")
	}
	if !in.ParallelShift(decimal.Zero).Equal(in) {
		t.Fatalf("zero shift should equal source")
	}
}

func TestBucketedShift(t *testing.T) {
	t.Parallel()

	in := usdLibor(t)

	mid, err := in.BucketedShift(1, dec("-0.002"))
	if err != nil {
		t.Fatalf("BucketedShift(1) error: %v", err)
	}
	assertRates(t, mid.ParRates(), "0.01", "0.010", "0.02")

	first, err := in.BucketedShift(0, dec("-0.005"))
	if err != nil {
		t.Fatalf("BucketedShift(0) error: %v", err)
	}
	assertRates(t, first.ParRates(), "0.005", "0.012", "0.020")
	assertRates(t, in.ParRates(), "0.010", "0.012", "0.020")

	if first.Name() != in.Name() || first.Convention() != in.Convention() {
		t.Fatalf("BucketedShift changed name or convention")
	}
}

func TestBucketedShift_IndexOutOfRange(t *testing.T) {
	t.Parallel()

	in := usdLibor(t)
	for _, idx := range []int{-1, 3, 100} {
		out, err := in.BucketedShift(idx, dec("0.0001"))
		if out != nil || !errors.Is(err, market.ErrInvalidArgument) {
			t.Fatalf("BucketedShift(%d) = %v, %v; want ErrInvalidArgument", idx, out, err)
		}
	}
	if _, err := in.Node(3); !errors.Is(err, market.ErrInvalidArgument) {
		t.Fatalf("Node(3) error = %v, want ErrInvalidArgument", err)
	}
}

func TestEqualAndHash(t *testing.T) {
	t.Parallel()

	a := usdLibor(t)
	b, err := parrate.New(
		"USD-LIBOR",
		[]market.Tenor{market.MustParseTenor("6M"), market.MustParseTenor("12M"), market.MustParseTenor("5Y")},
		[]market.InstrumentType{market.MoneyMarket, market.MoneyMarket, market.Swap},
		decs("0.01", "0.0120", "0.02"),
		market.USDLIBOR3M,
	)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if !a.Equal(b) || !b.Equal(a) {
		t.Fatalf("expected equal inputs:\n%s\n%s", a, b)
	}
	if a.Hash() != b.Hash() {
		t.Fatalf("equal inputs hash differently: %d vs %d", a.Hash(), b.Hash())
	}

	other, err := parrate.New("USD-SOFR", a.Tenors(), a.InstrumentTypes(), a.ParRates(), a.Convention())
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if a.Equal(other) {
		t.Fatalf("different names compare equal")
	}
	if a.Equal(nil) {
		t.Fatalf("non-nil equals nil")
	}
}

func TestFromNodes(t *testing.T) {
	t.Parallel()

	in := usdLibor(t)
	rebuilt, err := parrate.FromNodes(in.Name(), in.Nodes(), in.Convention())
	if err != nil {
		t.Fatalf("FromNodes error: %v", err)
	}
	if !rebuilt.Equal(in) {
		t.Fatalf("FromNodes mismatch: got %s want %s", rebuilt, in)
	}
	if _, err := parrate.FromNodes("X", nil, market.USDLIBOR3M); !errors.Is(err, market.ErrNullArgument) {
		t.Fatalf("FromNodes(nil) error = %v", err)
	}
	if _, err := parrate.FromNodes("X", []parrate.Node{}, market.USDLIBOR3M); !errors.Is(err, market.ErrInvalidArgument) {
		t.Fatalf("FromNodes(empty) error = %v", err)
	}
}

func TestString(t *testing.T) {
	t.Parallel()

	got := usdLibor(t).String()
	want := "ParRateCurveInput{name=USD-LIBOR, nodes=[6M/MM/0.01, 1Y/MM/0.012, 5Y/SWAP/0.02], convention=USD-LIBOR-3M[ACT/360 USD 6M T+2]}"
	if got != want {
		t.Fatalf("String mismatch:\ngot  %s\nwant %s", got, want)
	}
}

func TestShift_ConcurrentUse(t *testing.T) {
	t.Parallel()

	in := usdLibor(t)
	hash := in.Hash()
	tenors, types, rates := in.Tenors(), in.InstrumentTypes(), in.ParRates()

	const workers = 32
	rebuilt := make([]*parrate.CurveInput, workers)
	parallel := make([]*parrate.CurveInput, workers)
	bucketed := make([]*parrate.CurveInput, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rebuilt[i], _ = parrate.New(in.Name(), tenors, types, rates, in.Convention())
			parallel[i] = in.ParallelShift(dec("0.001"))
			bucketed[i], errs[i] = in.BucketedShift(i%in.NumberOfPoints(), dec("-0.005"))
			_ = in.String()
			_ = in.Nodes()
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		if errs[i] != nil {
			t.Fatalf("worker %d BucketedShift error: %v", i, errs[i])
		}
		if !rebuilt[i].Equal(in) {
			t.Fatalf("worker %d rebuilt input differs: %s", i, rebuilt[i])
		}
		assertRates(t, parallel[i].ParRates(), "0.011", "0.013", "0.021")
		want := []string{"0.010", "0.012", "0.020"}
		want[i%3] = dec(want[i%3]).Add(dec("-0.005")).String()
		assertRates(t, bucketed[i].ParRates(), want...)
	}

	assertRates(t, in.ParRates(), "0.010", "0.012", "0.020")
	if in.Hash() != hash || !in.Equal(usdLibor(t)) {
		t.Fatalf("source input changed under concurrent shifts: %s", in)
	}
}
