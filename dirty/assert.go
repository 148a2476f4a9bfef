package dirty

import "fmt"

// DebugAssertions gates CycleDebugAssert's panic behavior. It defaults to
// true for test and development builds; production embedders that want the
// release-mode "silently drop the edge" behavior described in spec.md should
// set this to false during initialization (e.g. behind a build tag or a
// startup flag), mirroring Rust's debug_assert! being compiled out entirely
// in release profiles. Go has no equivalent compile-time debug/release
// split, so Understory exposes the switch as a package variable instead.
var DebugAssertions = true

func assertf(format string, args ...any) {
	if !DebugAssertions {
		return
	}
	panic(fmt.Sprintf(format, args...))
}
