//go:build windows

// Package uiatree adapts the Windows UI Automation COM API to the
// uitree capability interface. Only the small surface the bridge needs
// is bound: element from window, name, automation id, tree walking,
// focus, and the Value pattern for writes.
package uiatree

import (
	"regexp"
	"syscall"
	"unsafe"

	"github.com/go-ole/go-ole"
	"github.com/rotisserie/eris"

	"github.com/luki/simbridge/internal/uitree"
)

var (
	clsidCUIAutomation = ole.NewGUID("{FF48DBA4-60EF-4201-AA87-54103EEF594E}")
	iidIUIAutomation   = ole.NewGUID("{30CBE57D-D9D0-452A-AB13-7AC5AC4825EE}")
)

const valuePatternID = 10002 // UIA_ValuePatternId

// IUIAutomation vtable slots after IUnknown (0-2), in the method order
// of uiautomationclient.h: 3 CompareElements, 4 CompareRuntimeIds,
// 5 GetRootElement, 6 ElementFromHandle, 7 ElementFromPoint,
// 8 GetFocusedElement, 9-12 the BuildCache variants, 13
// CreateTreeWalker, 14 get_ControlViewWalker.
const (
	autoElementFromHandle = 6
	autoControlViewWalker = 14
)

var (
	user32          = syscall.NewLazyDLL("user32.dll")
	procEnumWindows = user32.NewProc("EnumWindows")
	procGetWindowTW = user32.NewProc("GetWindowTextW")
)

// automation wraps IUIAutomation and its control-view tree walker.
type automation struct {
	auto   *ole.IUnknown
	walker uintptr
}

var shared *automation

func instance() (*automation, error) {
	if shared != nil {
		return shared, nil
	}
	_ = ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED)
	unk, err := ole.CreateInstance(clsidCUIAutomation, iidIUIAutomation)
	if err != nil {
		return nil, eris.Wrap(err, "uiatree: create CUIAutomation")
	}
	a := &automation{auto: unk}

	var walker uintptr
	hr, _, _ := syscall.SyscallN(vtbl(uintptr(unsafe.Pointer(unk)), autoControlViewWalker),
		uintptr(unsafe.Pointer(unk)), uintptr(unsafe.Pointer(&walker)))
	if int32(hr) < 0 || walker == 0 {
		return nil, eris.Errorf("uiatree: get control view walker: hr=0x%x", hr)
	}
	a.walker = walker
	shared = a
	return a, nil
}

func vtbl(obj uintptr, slot int) uintptr {
	table := *(*uintptr)(unsafe.Pointer(obj))
	return *(*uintptr)(unsafe.Pointer(table + uintptr(slot)*unsafe.Sizeof(uintptr(0))))
}

func call(obj uintptr, slot int, args ...uintptr) (uintptr, error) {
	all := append([]uintptr{obj}, args...)
	hr, _, _ := syscall.SyscallN(vtbl(obj, slot), all...)
	if int32(hr) < 0 {
		return hr, eris.Errorf("uiatree: com call slot %d: hr=0x%x", slot, hr)
	}
	return hr, nil
}

// Connect finds a top-level window whose title matches pattern and
// returns its root element.
func Connect(pattern string) (uitree.Element, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, eris.Wrap(err, "uiatree: window title pattern")
	}

	var hwnd uintptr
	cb := syscall.NewCallback(func(h uintptr, _ uintptr) uintptr {
		buf := make([]uint16, 512)
		n, _, _ := procGetWindowTW.Call(h, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
		if n > 0 && re.MatchString(syscall.UTF16ToString(buf[:n])) {
			hwnd = h
			return 0 // stop enumeration
		}
		return 1
	})
	procEnumWindows.Call(cb, 0)
	if hwnd == 0 {
		return nil, eris.Errorf("uiatree: no window matches %q", pattern)
	}

	a, err := instance()
	if err != nil {
		return nil, err
	}

	var el uintptr
	if _, err := call(uintptr(unsafe.Pointer(a.auto)), autoElementFromHandle, hwnd, uintptr(unsafe.Pointer(&el))); err != nil {
		return nil, eris.Wrap(err, "uiatree: element from handle")
	}
	if el == 0 {
		return nil, eris.New("uiatree: null root element")
	}
	return &element{a: a, raw: el}, nil
}

// element wraps an IUIAutomationElement pointer.
type element struct {
	a   *automation
	raw uintptr
}

var _ uitree.Element = (*element)(nil)

// IUIAutomationElement slots after IUnknown:
// 3 SetFocus, 16 GetCurrentPattern, 23 get_CurrentName,
// 29 get_CurrentAutomationId.
// IUIAutomationTreeWalker slots after IUnknown:
// 3 GetParentElement, 4 GetFirstChildElement, 6 GetNextSiblingElement.
// IUIAutomationValuePattern slots after IUnknown: 3 SetValue.

func (e *element) bstrProp(slot int) (string, error) {
	var bstr *uint16
	if _, err := call(e.raw, slot, uintptr(unsafe.Pointer(&bstr))); err != nil {
		return "", err
	}
	if bstr == nil {
		return "", nil
	}
	s := ole.BstrToString(bstr)
	ole.SysFreeString((*int16)(unsafe.Pointer(bstr)))
	return s, nil
}

func (e *element) Text() (string, error) {
	return e.bstrProp(23)
}

func (e *element) AutomationID() (string, error) {
	return e.bstrProp(29)
}

func (e *element) Parent() (uitree.Element, error) {
	var p uintptr
	if _, err := call(e.a.walker, 3, e.raw, uintptr(unsafe.Pointer(&p))); err != nil {
		return nil, err
	}
	if p == 0 {
		return nil, nil
	}
	return &element{a: e.a, raw: p}, nil
}

func (e *element) Children() ([]uitree.Element, error) {
	var first uintptr
	if _, err := call(e.a.walker, 4, e.raw, uintptr(unsafe.Pointer(&first))); err != nil {
		return nil, err
	}
	var kids []uitree.Element
	cur := first
	for cur != 0 {
		kids = append(kids, &element{a: e.a, raw: cur})
		var next uintptr
		if _, err := call(e.a.walker, 6, cur, uintptr(unsafe.Pointer(&next))); err != nil {
			break
		}
		cur = next
	}
	return kids, nil
}

func (e *element) SetFocus() error {
	_, err := call(e.raw, 3)
	return err
}

func (e *element) SetText(s string) error {
	var pattern uintptr
	if _, err := call(e.raw, 16, valuePatternID, uintptr(unsafe.Pointer(&pattern))); err != nil {
		return eris.Wrap(err, "uiatree: get value pattern")
	}
	if pattern == 0 {
		return eris.New("uiatree: element has no value pattern")
	}
	bstr := ole.SysAllocStringLen(s)
	defer ole.SysFreeString(bstr)
	_, err := call(pattern, 3, uintptr(unsafe.Pointer(bstr)))
	if err != nil {
		return eris.Wrap(err, "uiatree: set value")
	}
	return nil
}
