package template

import (
	"sort"
	"strings"
)

// compareNames orders template file names so the newest release sorts
// last. Names split on '-' and digit runs inside each segment compare
// numerically, so debian-10.7-standard orders after debian-10.2-standard
// and 10.10 orders after 10.7.
func compareNames(a, b string) int {
	as := strings.Split(a, "-")
	bs := strings.Split(b, "-")

	for i := 0; i < len(as) && i < len(bs); i++ {
		if c := compareSegments(as[i], bs[i]); c != 0 {
			return c
		}
	}
	return len(as) - len(bs)
}

// compareSegments compares one dash-separated segment with numeric
// ordering for digit runs.
func compareSegments(a, b string) int {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if isDigit(a[i]) && isDigit(b[j]) {
			ia, jb := i, j
			for ia < len(a) && isDigit(a[ia]) {
				ia++
			}
			for jb < len(b) && isDigit(b[jb]) {
				jb++
			}

			na := strings.TrimLeft(a[i:ia], "0")
			nb := strings.TrimLeft(b[j:jb], "0")
			if len(na) != len(nb) {
				return len(na) - len(nb)
			}
			if na != nb {
				return strings.Compare(na, nb)
			}

			i, j = ia, jb
			continue
		}

		if a[i] != b[j] {
			return int(a[i]) - int(b[j])
		}
		i++
		j++
	}

	switch {
	case i < len(a):
		return 1
	case j < len(b):
		return -1
	}
	return 0
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// sortByVersion orders template names oldest to newest in place.
func sortByVersion(names []string) {
	sort.SliceStable(names, func(i, j int) bool {
		return compareNames(names[i], names[j]) < 0
	})
}
