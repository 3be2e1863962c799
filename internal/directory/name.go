package directory

import (
	"strings"
	"unicode/utf16"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/RinpoStk/fmod/internal/fserrors"
	"github.com/RinpoStk/fmod/internal/layout"
)

// illegalNameBytes are the characters spec.md §4.5 rejects outright in a
// user-supplied name, beyond any byte < 0x20.
const illegalNameBytes = `"*/:<>?\|`

// lossyBasisBytes are replaced with '_' when deriving the 8.3 basis name,
// per spec.md §4.5 step 1.
const lossyBasisBytes = `+,;=[]`

// ucs2Codec decodes/encodes the little-endian UCS-2 byte streams packed
// into LDE name1/name2/name3, per spec.md §4.4's UCS-2 handling and
// SPEC_FULL.md §3 (golang.org/x/text/encoding/unicode, adopted from the
// soypat-fat dependency surface in place of the teacher's low-byte-only
// shortcut).
var ucs2Codec = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// ValidateName checks a user-supplied long name against spec.md §4.5's
// creation rules: not "." or "..", no trailing dots after stripping, length
// bounds, and no illegal bytes.
func ValidateName(name string, currentPathLen int) (string, error) {
	if name == "." || name == ".." {
		return "", fserrors.Name("%q is not a valid file name", name)
	}
	trimmed := strings.TrimRight(name, ".")
	if trimmed == "" {
		return "", fserrors.Name("%q is not a valid file name", name)
	}
	if len(trimmed) > 255 {
		return "", fserrors.Name("name %q is too long", name)
	}
	if currentPathLen+len(trimmed) > 260 {
		return "", fserrors.Name("path is too long for %q", name)
	}
	for _, b := range []byte(trimmed) {
		if b < 0x20 || strings.ContainsRune(illegalNameBytes, rune(b)) {
			return "", fserrors.Name("%q contains an illegal character", name)
		}
	}
	return trimmed, nil
}

// fitsIn8_3 reports whether name can be represented without a numeric tail:
// length <= 11 with no dot, or length <= 12 with exactly one dot.
func fitsIn8_3(name string) bool {
	dots := strings.Count(name, ".")
	switch dots {
	case 0:
		return len(name) <= layout.ShortNameLen
	case 1:
		return len(name) <= layout.ShortNameLen+1
	default:
		return false
	}
}

// basisName derives the 11-byte 8.3 short name and reports whether the
// derivation was lossy, per spec.md §4.5.
func basisName(name string) ([layout.ShortNameLen]byte, bool) {
	lossy := false

	work := make([]rune, 0, len(name))
	for _, r := range name {
		if strings.ContainsRune(lossyBasisBytes, r) {
			work = append(work, '_')
			lossy = true
			continue
		}
		if r == ' ' {
			lossy = true
			continue
		}
		work = append(work, r)
	}

	lastDot := -1
	for i, r := range work {
		if r == '.' {
			lastDot = i
		}
	}
	if lastDot >= 0 {
		filtered := make([]rune, 0, len(work))
		for i, r := range work {
			if r == '.' && i != lastDot {
				lossy = true
				continue
			}
			filtered = append(filtered, r)
		}
		work = filtered
		lastDot = -1
		for i, r := range work {
			if r == '.' {
				lastDot = i
			}
		}
	}

	upper := strings.ToUpper(string(work))
	work = []rune(upper)

	var basis [layout.ShortNameLen]byte
	for i := range basis {
		basis[i] = layout.ShortNameSpacePad
	}

	primary := work
	var ext []rune
	if lastDot >= 0 {
		primary = work[:lastDot]
		ext = work[lastDot+1:]
	}
	if len(primary) > layout.ShortNameBaseLen {
		lossy = true
	}
	if len(ext) > layout.ShortNameExtLen {
		lossy = true
	}

	for i := 0; i < layout.ShortNameBaseLen && i < len(primary); i++ {
		basis[i] = byte(primary[i])
	}
	for i := 0; i < layout.ShortNameExtLen && i < len(ext); i++ {
		basis[layout.ShortNameBaseLen+i] = byte(ext[i])
	}

	return basis, lossy
}

// needsNumericTail reports whether basis must gain a "~N" numeric tail:
// the derivation was lossy, the long name doesn't fit 8.3 verbatim, or the
// basis already collides with an existing short name in dir.
func needsNumericTail(name string, lossy bool, basis [layout.ShortNameLen]byte, existing [][layout.ShortNameLen]byte) bool {
	if lossy || !fitsIn8_3(name) {
		return true
	}
	for _, e := range existing {
		if e == basis {
			return true
		}
	}
	return false
}

// numericTail resolves a basis-name collision by trying PRIMARY~n for
// n = 1..999999, trimming PRIMARY so the total stays within 8 characters.
func numericTail(basis [layout.ShortNameLen]byte, existing [][layout.ShortNameLen]byte) ([layout.ShortNameLen]byte, error) {
	ext := basis[layout.ShortNameBaseLen:]
	primary := strings.TrimRight(string(basis[:layout.ShortNameBaseLen]), " ")

	seen := make(map[[layout.ShortNameLen]byte]bool, len(existing))
	for _, e := range existing {
		seen[e] = true
	}

	for n := 1; n <= 999999; n++ {
		suffix := "~" + itoa(n)
		maxPrimary := layout.ShortNameBaseLen - len(suffix)
		if maxPrimary < 0 {
			continue
		}
		trimmedPrimary := primary
		if len(trimmedPrimary) > maxPrimary {
			trimmedPrimary = trimmedPrimary[:maxPrimary]
		}
		candidateStr := trimmedPrimary + suffix
		var candidate [layout.ShortNameLen]byte
		for i := range candidate {
			candidate[i] = layout.ShortNameSpacePad
		}
		copy(candidate[:layout.ShortNameBaseLen], candidateStr)
		copy(candidate[layout.ShortNameBaseLen:], ext)
		if !seen[candidate] {
			return candidate, nil
		}
	}
	return [layout.ShortNameLen]byte{}, fserrors.Space("could not generate a unique short name")
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [7]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

// shortNameChecksum implements spec.md §4.5's cyclic-shift checksum that
// binds an LDE run to its SDE.
func shortNameChecksum(short [layout.ShortNameLen]byte) byte {
	var sum byte
	for _, b := range short {
		var carry byte
		if sum&1 != 0 {
			carry = 0x80
		}
		sum = carry + (sum >> 1) + b
	}
	return sum
}

// buildLongEntries packs name into a run of LDEs in on-disk order (ordinal
// N first, bit 0x40 set on that first-on-disk entry), per spec.md §4.5.
func buildLongEntries(name string, checksum byte) []layout.LongEntry {
	units := encodeUCS2(name)
	n := (len(units) + layout.LongNameLength - 1) / layout.LongNameLength
	if n == 0 {
		n = 1
	}

	padded := make([]uint16, n*layout.LongNameLength)
	for i := range padded {
		padded[i] = layout.LongNameTrail
	}
	copy(padded, units)
	if len(units) < len(padded) {
		padded[len(units)] = layout.LongNameNull
	}

	entries := make([]layout.LongEntry, n)
	for seq := 1; seq <= n; seq++ {
		e := layout.LongEntry{
			Ordinal:    uint8(seq),
			Attributes: layout.AttrLongName,
			Type:       0,
			Checksum:   checksum,
		}
		if seq == n {
			e.Ordinal |= layout.LastLongEntryFlag
		}
		var block [layout.LongNameLength]uint16
		copy(block[:], padded[(seq-1)*layout.LongNameLength:seq*layout.LongNameLength])
		e.SetNameUnits(block)
		entries[seq-1] = e
	}

	// Reverse into on-disk order: highest ordinal (bit 0x40) first.
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries
}

// assembleLongName concatenates the name units of an ordinal-ascending LDE
// run, stopping at the first trailing/null unit, per spec.md §4.4.
func assembleLongName(ascending []layout.LongEntry) string {
	var units []uint16
	for _, e := range ascending {
		nu := e.NameUnits()
		for _, u := range nu {
			if u == layout.LongNameTrail || u == layout.LongNameNull {
				return decodeUCS2(units)
			}
			units = append(units, u)
		}
	}
	return decodeUCS2(units)
}

// encodeUCS2 turns a name into little-endian UCS-2 code units via
// golang.org/x/text/encoding/unicode. If encoding fails or any rune needs a
// surrogate pair, the whole name falls back to one unit per byte of its
// UTF-8 form (spec.md §4.4's allowed low-byte shortcut).
func encodeUCS2(name string) []uint16 {
	encoded, _, err := transform.String(ucs2Codec.NewEncoder(), name)
	if err != nil {
		return lowByteUnits(name)
	}
	if len(encoded)%2 != 0 {
		return lowByteUnits(name)
	}
	units := make([]uint16, len(encoded)/2)
	for i := range units {
		units[i] = uint16(encoded[2*i]) | uint16(encoded[2*i+1])<<8
	}
	for _, u := range units {
		if utf16.IsSurrogate(rune(u)) {
			return lowByteUnits(name)
		}
	}
	return units
}

func lowByteUnits(name string) []uint16 {
	units := make([]uint16, 0, len(name))
	for i := 0; i < len(name); i++ {
		units = append(units, uint16(name[i]))
	}
	return units
}

// decodeUCS2 is the inverse of encodeUCS2, used when reassembling a name
// from an on-disk LDE run.
func decodeUCS2(units []uint16) string {
	raw := make([]byte, len(units)*2)
	for i, u := range units {
		raw[2*i] = byte(u)
		raw[2*i+1] = byte(u >> 8)
	}
	decoded, _, err := transform.Bytes(ucs2Codec.NewDecoder(), raw)
	if err != nil {
		// Fall back to the teacher's low-byte reading of each unit.
		out := make([]byte, len(units))
		for i, u := range units {
			out[i] = byte(u)
		}
		return string(out)
	}
	return string(decoded)
}

// shortNameFromEntry derives a display name from an SDE's 11-byte short
// name when no LDE run precedes it, per spec.md §4.4: walk bytes, skip
// padding spaces, the first run of non-space bytes before any padding gap
// is the base, resuming after the gap emits an implied '.' then the
// extension.
func shortNameFromEntry(raw [layout.ShortNameLen]byte) string {
	var base, ext []byte
	inGap := false
	for i, b := range raw {
		if b == layout.ShortNameSpacePad {
			if i < layout.ShortNameBaseLen {
				inGap = true
			}
			continue
		}
		if i < layout.ShortNameBaseLen && !inGap {
			base = append(base, b)
		} else {
			ext = append(ext, b)
		}
	}
	if len(ext) == 0 {
		return string(base)
	}
	return string(base) + "." + string(ext)
}
