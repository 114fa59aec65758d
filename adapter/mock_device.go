package adapter

// Code generated by MockGen would normally live here; this file is
// hand-written in its place (the toolchain is not invoked in this
// repository) but follows the generated shape.
//
//go:generate mockgen -destination=mock_device.go -package=adapter github.com/Helios113/ramulator2/adapter deviceFace

import (
	"reflect"

	"go.uber.org/mock/gomock"

	"github.com/Helios113/ramulator2/dram"
)

// MockDeviceFace is a mock of the deviceFace interface.
type MockDeviceFace struct {
	ctrl     *gomock.Controller
	recorder *MockDeviceFaceMockRecorder
}

// MockDeviceFaceMockRecorder is the mock recorder for MockDeviceFace.
type MockDeviceFaceMockRecorder struct {
	mock *MockDeviceFace
}

// NewMockDeviceFace creates a new mock instance.
func NewMockDeviceFace(ctrl *gomock.Controller) *MockDeviceFace {
	mock := &MockDeviceFace{ctrl: ctrl}
	mock.recorder = &MockDeviceFaceMockRecorder{mock}

	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockDeviceFace) EXPECT() *MockDeviceFaceMockRecorder {
	return m.recorder
}

// Organization mocks base method.
func (m *MockDeviceFace) Organization() dram.Organization {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Organization")
	ret0, _ := ret[0].(dram.Organization)

	return ret0
}

// Organization indicates an expected call of Organization.
func (mr *MockDeviceFaceMockRecorder) Organization() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Organization",
		reflect.TypeOf((*MockDeviceFace)(nil).Organization))
}

// GetPreqCommand mocks base method.
func (m *MockDeviceFace) GetPreqCommand(cmd dram.Command, addr dram.Addr, clk dram.Clk) dram.Command {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetPreqCommand", cmd, addr, clk)
	ret0, _ := ret[0].(dram.Command)

	return ret0
}

// GetPreqCommand indicates an expected call of GetPreqCommand.
func (mr *MockDeviceFaceMockRecorder) GetPreqCommand(cmd, addr, clk interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetPreqCommand",
		reflect.TypeOf((*MockDeviceFace)(nil).GetPreqCommand), cmd, addr, clk)
}

// CheckReady mocks base method.
func (m *MockDeviceFace) CheckReady(cmd dram.Command, addr dram.Addr, clk dram.Clk) bool {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CheckReady", cmd, addr, clk)
	ret0, _ := ret[0].(bool)

	return ret0
}

// CheckReady indicates an expected call of CheckReady.
func (mr *MockDeviceFaceMockRecorder) CheckReady(cmd, addr, clk interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CheckReady",
		reflect.TypeOf((*MockDeviceFace)(nil).CheckReady), cmd, addr, clk)
}

// IssueCommand mocks base method.
func (m *MockDeviceFace) IssueCommand(cmd dram.Command, addr dram.Addr, clk dram.Clk) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "IssueCommand", cmd, addr, clk)
}

// IssueCommand indicates an expected call of IssueCommand.
func (mr *MockDeviceFaceMockRecorder) IssueCommand(cmd, addr, clk interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "IssueCommand",
		reflect.TypeOf((*MockDeviceFace)(nil).IssueCommand), cmd, addr, clk)
}

// ReadLatency mocks base method.
func (m *MockDeviceFace) ReadLatency() int {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ReadLatency")
	ret0, _ := ret[0].(int)

	return ret0
}

// ReadLatency indicates an expected call of ReadLatency.
func (mr *MockDeviceFaceMockRecorder) ReadLatency() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ReadLatency",
		reflect.TypeOf((*MockDeviceFace)(nil).ReadLatency))
}

// WriteLatency mocks base method.
func (m *MockDeviceFace) WriteLatency() int {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "WriteLatency")
	ret0, _ := ret[0].(int)

	return ret0
}

// WriteLatency indicates an expected call of WriteLatency.
func (mr *MockDeviceFaceMockRecorder) WriteLatency() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "WriteLatency",
		reflect.TypeOf((*MockDeviceFace)(nil).WriteLatency))
}
