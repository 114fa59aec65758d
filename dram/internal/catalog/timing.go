package catalog

import (
	"math"
	"strings"

	"github.com/Helios113/ramulator2/dram/internal/errs"
)

// Timing name indices, in the fixed order the LPDDR5X device model keeps
// them in: rate, nBL32, nCL, nRCDW, nRCDR, nRPab, nRPpb, nRAS, nRC, nWR,
// nRTP, nCWL, nCCD, nRRD, nWTRS, nWTRL, nFAW, nPPD, nRFCab, nRFCpb, nREFI,
// nPBR2PBR, nPBR2ACT, nCS, tCK_ps.
const (
	TRate Timing = iota
	TnBL32
	TnCL
	TnRCDW
	TnRCDR
	TnRPab
	TnRPpb
	TnRAS
	TnRC
	TnWR
	TnRTP
	TnCWL
	TnCCD
	TnRRD
	TnWTRS
	TnWTRL
	TnFAW
	TnPPD
	TnRFCab
	TnRFCpb
	TnREFI
	TnPBR2PBR
	TnPBR2ACT
	TnCS
	TtCKps

	numTimings
)

// NumTimings is the number of entries in the timing vector.
const NumTimings = int(numTimings)

// Timing indexes the fixed-order timing value vector.
type Timing int

var timingNames = [numTimings]string{
	TRate: "rate", TnBL32: "nBL32",
	TnCL: "nCL", TnRCDW: "nRCDW", TnRCDR: "nRCDR",
	TnRPab: "nRPab", TnRPpb: "nRPpb", TnRAS: "nRAS", TnRC: "nRC",
	TnWR: "nWR", TnRTP: "nRTP", TnCWL: "nCWL",
	TnCCD: "nCCD",
	TnRRD: "nRRD",
	TnWTRS: "nWTRS", TnWTRL: "nWTRL",
	TnFAW: "nFAW",
	TnPPD: "nPPD",
	TnRFCab: "nRFCab", TnRFCpb: "nRFCpb", TnREFI: "nREFI",
	TnPBR2PBR: "nPBR2PBR", TnPBR2ACT: "nPBR2ACT",
	TnCS:   "nCS",
	TtCKps: "tCK_ps",
}

func (t Timing) String() string { return timingNames[t] }

// TimingByName resolves a cycle-count timing name (e.g. "nRCDR") or its
// nanosecond spelling (e.g. "tRCDR", see NsTimingName) to its index. ok is
// false if unrecognized.
func TimingByName(name string) (t Timing, ok bool) {
	for i, n := range timingNames {
		if n == name || NsTimingName(Timing(i)) == name {
			return Timing(i), true
		}
	}

	return 0, false
}

// Timings is the fixed-order timing value vector, holding cycle counts
// (except TRate, which holds the transfer rate in MT/s).
type Timings [numTimings]int

// timingPresets is the compile-time table of named speed bins. Values are
// taken verbatim from the Ramulator2 LPDDR5X_8533 preset; density-dependent
// entries (nRFCab, nRFCpb, nPBR2PBR, nPBR2ACT, nREFI) are left at -1 and
// filled in by LoadTiming from the density tables below.
var timingPresets = map[string]Timings{
	"LPDDR5X_8533": {
		TRate: 8533, TnBL32: 2,
		TnCL: 26, TnRCDW: 9, TnRCDR: 20,
		TnRPab: 32, TnRPpb: 20, TnRAS: 45, TnRC: 65,
		TnWR: 37, TnRTP: 6, TnCWL: 12,
		TnCCD: 2,
		TnRRD: 4,
		TnWTRS: 7, TnWTRL: 13,
		TnFAW: 16,
		TnPPD: 2,
		TnRFCab: -1, TnRFCpb: -1, TnREFI: -1,
		TnPBR2PBR: -1, TnPBR2ACT: -1,
		TnCS:   2,
		TtCKps: 938,
	},
}

// densityBin indexes the nanosecond refresh-timing tables by density.
func densityBin(densityMb int) (int, bool) {
	switch densityMb {
	case 2 << 10:
		return 0, true
	case 4 << 10:
		return 1, true
	case 8 << 10:
		return 2, true
	case 16 << 10:
		return 3, true
	default:
		return 0, false
	}
}

// Nanosecond refresh-timing tables, indexed by densityBin. Units are
// nanoseconds; LoadTiming converts them to cycles by JEDEC rounding.
var (
	tRFCabNsTable   = [4]float64{130, 180, 210, 280}
	tRFCpbNsTable   = [4]float64{60, 90, 120, 140}
	tPBR2PBRNsTable = [4]float64{60, 90, 90, 90}
	tPBR2ACTNsTable = [4]float64{8, 8, 8, 8}
	tREFIBaseNs     = 3906.0
)

// TimingOverrides carries the optional per-timing overrides accepted by
// LoadTiming. CycleOverrides are taken as whole cycle counts; NsOverrides
// (keyed by the same name with a leading "t" instead of "n", e.g. "tRCD")
// are taken in nanoseconds and JEDEC-rounded to cycles.
type TimingOverrides struct {
	Preset         string
	Rate           *int
	CycleOverrides map[Timing]int
	NsOverrides    map[Timing]float64
}

// LoadTiming resolves a Timings vector from an optional preset plus
// overrides, given the Organization the timings apply to (needed for the
// density-dependent refresh timings). Mirrors the LPDDR5X device model's
// set_timing_vals: preset first, then rate (fatal if a preset is also
// given), then tCK_ps, then the density-dependent entries, then explicit
// overrides (cycle counts win over nanosecond overrides of the same name),
// then a final completeness check.
func LoadTiming(o TimingOverrides, org Organization) (Timings, error) {
	var t Timings
	for i := range t {
		t[i] = -1
	}

	presetProvided := o.Preset != ""

	if presetProvided {
		preset, ok := timingPresets[o.Preset]
		if !ok {
			return Timings{}, errs.NewConfigurationError(
				"unrecognized timing preset %q", o.Preset)
		}

		t = preset
	}

	if o.Rate != nil {
		if presetProvided {
			return Timings{}, errs.NewConfigurationError(
				"cannot change the transfer rate when using a speed preset")
		}

		t[TRate] = *o.Rate
	}

	if t[TRate] <= 0 {
		return Timings{}, errs.NewConfigurationError(
			"transfer rate must be set, either via a timing preset or an explicit rate")
	}

	t[TtCKps] = int(1e6 / (float64(t[TRate]) / 2))
	tCKps := float64(t[TtCKps])

	bin, ok := densityBin(org.DensityMb)
	if !ok {
		return Timings{}, errs.NewConfigurationError(
			"no refresh-timing table known for density %d Mb", org.DensityMb)
	}

	t[TnRFCab] = jedecRound(tRFCabNsTable[bin], tCKps)
	t[TnRFCpb] = jedecRound(tRFCpbNsTable[bin], tCKps)
	t[TnPBR2PBR] = jedecRound(tPBR2PBRNsTable[bin], tCKps)
	t[TnPBR2ACT] = jedecRound(tPBR2ACTNsTable[bin], tCKps)
	t[TnREFI] = jedecRound(tREFIBaseNs, tCKps)

	// Overwrite with any user-provided value. rate and tCK_ps are never
	// overridden past this point.
	for name, cycles := range o.CycleOverrides {
		if name == TRate || name == TtCKps {
			continue
		}

		t[name] = cycles
	}

	for name, ns := range o.NsOverrides {
		if name == TRate || name == TtCKps {
			continue
		}

		if _, has := o.CycleOverrides[name]; has {
			continue
		}

		t[name] = jedecRound(ns, tCKps)
	}

	for i, v := range t {
		if v == -1 {
			return Timings{}, errs.NewConfigurationError(
				"timing %q is not specified", Timing(i))
		}
	}

	return t, nil
}

// jedecRound converts a nanosecond timing value to a whole cycle count by
// JEDEC rounding: ceil(ns * 1000 / tCK_ps).
func jedecRound(ns float64, tCKps float64) int {
	return int(math.Ceil(ns * 1000 / tCKps))
}

// NsTimingName converts a cycle-count timing name's index to its
// nanosecond-override spelling (leading "n" replaced with "t"), mirroring
// the device model's timing_name.replace(0, 1, "t").
func NsTimingName(t Timing) string {
	name := t.String()
	if strings.HasPrefix(name, "n") {
		return "t" + name[1:]
	}

	return name
}

// ReadLatency is m_read_latency = nCL + 3*nBL32.
func (t Timings) ReadLatency() int {
	return t[TnCL] + 3*t[TnBL32]
}
