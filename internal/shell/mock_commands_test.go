// Hand-written mock of the Commands interface in dispatch.go, in the shape
// MockGen emits.

package shell

import (
	reflect "reflect"

	gomock "github.com/golang/mock/gomock"

	directory "github.com/RinpoStk/fmod/internal/directory"
)

// MockCommands is a mock of the Commands interface.
type MockCommands struct {
	ctrl     *gomock.Controller
	recorder *MockCommandsMockRecorder
}

// MockCommandsMockRecorder is the mock recorder for MockCommands.
type MockCommandsMockRecorder struct {
	mock *MockCommands
}

// NewMockCommands creates a new mock instance.
func NewMockCommands(ctrl *gomock.Controller) *MockCommands {
	mock := &MockCommands{ctrl: ctrl}
	mock.recorder = &MockCommandsMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockCommands) EXPECT() *MockCommandsMockRecorder {
	return m.recorder
}

func (m *MockCommands) Pwd() string {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Pwd")
	ret0, _ := ret[0].(string)
	return ret0
}

func (mr *MockCommandsMockRecorder) Pwd() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Pwd", reflect.TypeOf((*MockCommands)(nil).Pwd))
}

func (m *MockCommands) Fsinfo() string {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Fsinfo")
	ret0, _ := ret[0].(string)
	return ret0
}

func (mr *MockCommandsMockRecorder) Fsinfo() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Fsinfo", reflect.TypeOf((*MockCommands)(nil).Fsinfo))
}

func (m *MockCommands) Open(name, mode string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Open", name, mode)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockCommandsMockRecorder) Open(name, mode interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Open", reflect.TypeOf((*MockCommands)(nil).Open), name, mode)
}

func (m *MockCommands) Close(name string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Close", name)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockCommandsMockRecorder) Close(name interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Close", reflect.TypeOf((*MockCommands)(nil).Close), name)
}

func (m *MockCommands) Create(name string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", name)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockCommandsMockRecorder) Create(name interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*MockCommands)(nil).Create), name)
}

func (m *MockCommands) Read(name string, startPos, numBytes uint32) ([]byte, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Read", name, startPos, numBytes)
	ret0, _ := ret[0].([]byte)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockCommandsMockRecorder) Read(name, startPos, numBytes interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Read", reflect.TypeOf((*MockCommands)(nil).Read), name, startPos, numBytes)
}

func (m *MockCommands) Write(name string, startPos uint32, data []byte) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Write", name, startPos, data)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockCommandsMockRecorder) Write(name, startPos, data interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Write", reflect.TypeOf((*MockCommands)(nil).Write), name, startPos, data)
}

func (m *MockCommands) Rm(name string, safe bool) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Rm", name, safe)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockCommandsMockRecorder) Rm(name, safe interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Rm", reflect.TypeOf((*MockCommands)(nil).Rm), name, safe)
}

func (m *MockCommands) Cd(name string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Cd", name)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockCommandsMockRecorder) Cd(name interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Cd", reflect.TypeOf((*MockCommands)(nil).Cd), name)
}

func (m *MockCommands) Ls(dirName string) ([]*directory.Entry, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Ls", dirName)
	ret0, _ := ret[0].([]*directory.Entry)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockCommandsMockRecorder) Ls(dirName interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Ls", reflect.TypeOf((*MockCommands)(nil).Ls), dirName)
}

func (m *MockCommands) Mkdir(name string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Mkdir", name)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockCommandsMockRecorder) Mkdir(name interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Mkdir", reflect.TypeOf((*MockCommands)(nil).Mkdir), name)
}

func (m *MockCommands) Rmdir(name string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Rmdir", name)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockCommandsMockRecorder) Rmdir(name interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Rmdir", reflect.TypeOf((*MockCommands)(nil).Rmdir), name)
}

func (m *MockCommands) Size(name string) (uint32, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Size", name)
	ret0, _ := ret[0].(uint32)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockCommandsMockRecorder) Size(name interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Size", reflect.TypeOf((*MockCommands)(nil).Size), name)
}
