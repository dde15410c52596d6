package marshal

import "github.com/nativestub/marshalgen/stream"

// Helper enumerates the well-known runtime entry points (§6) a variant may
// need to call to allocate, convert, or release resources it doesn't
// generate inline. The name is the OpCallHelper operand string; a real
// back-end resolves it to an actual method reference (possibly through
// Emitter.MethodToken, for callers that want a resolved Token instead of a
// bare name).
type Helper string

const (
	HelperCoTaskMemAllocAndZeroMemory Helper = "CoTaskMemAllocAndZeroMemory"
	HelperCoTaskMemFree               Helper = "CoTaskMemFree"
	HelperStringToAnsi                Helper = "StringToAnsi"
	HelperAnsiStringToString          Helper = "AnsiStringToString"
	HelperGetEmptyStringBuilderBuffer Helper = "GetEmptyStringBuilderBuffer"
	HelperStringBuilderReplaceBuffer  Helper = "StringBuilder.ReplaceBuffer"
	HelperGetStubForPInvokeDelegate   Helper = "GetStubForPInvokeDelegate"
	HelperGetOffsetToStringData       Helper = "RuntimeHelpers.get_OffsetToStringData"
	HelperDangerousAddRef             Helper = "SafeHandle.DangerousAddRef"
	HelperDangerousRelease            Helper = "SafeHandle.DangerousRelease"
	HelperDangerousGetHandle          Helper = "SafeHandle.DangerousGetHandle"
	HelperSetHandle                   Helper = "SafeHandle.SetHandle"
)

// callHelper appends an OpCallHelper instruction referencing h.
func callHelper(s *stream.Stream, h Helper) {
	s.Append(stream.OpCallHelper, stream.StringOperand(string(h)))
}
