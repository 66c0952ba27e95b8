package market

// CurveName identifies a curve, e.g. "USD-SOFR".
type CurveName string

// ValueType tags the meaning of a curve axis.
type ValueType string

const (
	Unknown        ValueType = "Unknown"
	YearFraction   ValueType = "YearFraction"
	ZeroRate       ValueType = "ZeroRate"
	DiscountFactor ValueType = "DiscountFactor"
	ForwardRate    ValueType = "ForwardRate"
	ParRate        ValueType = "ParRate"
)

// OrUnknown returns Unknown for the zero value.
func (v ValueType) OrUnknown() ValueType {
	if v == "" {
		return Unknown
	}
	return v
}

// InstrumentType is the kind of market instrument quoted at a curve node.
type InstrumentType string

const (
	MoneyMarket InstrumentType = "MM"
	FRA         InstrumentType = "FRA"
	Future      InstrumentType = "FUTURE"
	Swap        InstrumentType = "SWAP"
	OIS         InstrumentType = "OIS"
	BasisSwap   InstrumentType = "BASIS_SWAP"
	FXSwap      InstrumentType = "FX_SWAP"
)

// ParseInstrumentType maps a quote label to an InstrumentType.
func ParseInstrumentType(s string) (InstrumentType, error) {
	switch it := InstrumentType(s); it {
	case MoneyMarket, FRA, Future, Swap, OIS, BasisSwap, FXSwap:
		return it, nil
	default:
		return "", InvalidArgument("unknown instrument type " + s)
	}
}

// ParseValueType maps an axis label to a ValueType. An empty label is Unknown.
func ParseValueType(s string) (ValueType, error) {
	switch vt := ValueType(s); vt {
	case "":
		return Unknown, nil
	case Unknown, YearFraction, ZeroRate, DiscountFactor, ForwardRate, ParRate:
		return vt, nil
	default:
		return "", InvalidArgument("unknown value type " + s)
	}
}
