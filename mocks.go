// Copyright (c) 2025, The GoKit Authors
// MIT License
// All rights reserved.

package busmq

// =============================================================================
// MockConnection - Mock implementation of Connection interface for testing
// =============================================================================

// MockConnection is a mock implementation of Connection interface for testing.
// Open, Close and Free flip the endpoint states the way the protocol engine
// would, so handlers can be driven through realistic lifecycles.
type MockConnection struct {
	hostname          string
	containerID       string
	remoteContainerID string
	properties        *Properties
	remoteProperties  *Properties
	localState        EndpointState
	remoteState       EndpointState
	remoteCondition   *ErrorCondition
	transport         Transport
	freed             bool
	openCalls         int
	closeCalls        int
	freeCalls         int
}

func NewMockConnection() *MockConnection {
	return &MockConnection{
		localState:  EndpointUninitialized,
		remoteState: EndpointUninitialized,
	}
}

func (m *MockConnection) Hostname() string {
	return m.hostname
}

func (m *MockConnection) SetHostname(hostname string) {
	m.hostname = hostname
}

func (m *MockConnection) ContainerID() string {
	return m.containerID
}

func (m *MockConnection) SetContainerID(id string) {
	m.containerID = id
}

func (m *MockConnection) RemoteContainerID() string {
	return m.remoteContainerID
}

func (m *MockConnection) Properties() *Properties {
	return m.properties
}

func (m *MockConnection) SetProperties(properties *Properties) {
	m.properties = properties
}

func (m *MockConnection) RemoteProperties() *Properties {
	return m.remoteProperties
}

func (m *MockConnection) Open() {
	m.openCalls++
	m.localState = EndpointActive
}

func (m *MockConnection) Close() {
	m.closeCalls++
	m.localState = EndpointClosed
}

func (m *MockConnection) LocalState() EndpointState {
	return m.localState
}

func (m *MockConnection) RemoteState() EndpointState {
	return m.remoteState
}

func (m *MockConnection) RemoteCondition() *ErrorCondition {
	return m.remoteCondition
}

func (m *MockConnection) Transport() Transport {
	return m.transport
}

func (m *MockConnection) Free() {
	m.freeCalls++
	m.freed = true
}

func (m *MockConnection) Freed() bool {
	return m.freed
}

// Helper methods for testing
func (m *MockConnection) SetLocalState(state EndpointState) {
	m.localState = state
}

func (m *MockConnection) SetRemoteState(state EndpointState) {
	m.remoteState = state
}

func (m *MockConnection) SetRemoteCondition(condition *ErrorCondition) {
	m.remoteCondition = condition
}

func (m *MockConnection) SetRemoteContainerID(id string) {
	m.remoteContainerID = id
}

func (m *MockConnection) SetRemoteProperties(properties *Properties) {
	m.remoteProperties = properties
}

func (m *MockConnection) SetTransport(transport Transport) {
	m.transport = transport
}

// GetOpenCalls returns how many times Open was invoked.
func (m *MockConnection) GetOpenCalls() int {
	return m.openCalls
}

// GetCloseCalls returns how many times Close was invoked.
func (m *MockConnection) GetCloseCalls() int {
	return m.closeCalls
}

// GetFreeCalls returns how many times Free was invoked.
func (m *MockConnection) GetFreeCalls() int {
	return m.freeCalls
}

// =============================================================================
// MockSASL - Mock implementation of SASL interface for testing
// =============================================================================

// MockSASL is a mock implementation of SASL interface for testing
type MockSASL struct {
	mechanisms         []string
	setMechanismsCalls int
}

func NewMockSASL() *MockSASL {
	return &MockSASL{}
}

func (m *MockSASL) SetMechanisms(mechanisms ...string) {
	m.setMechanismsCalls++
	m.mechanisms = mechanisms
}

// GetMechanisms returns the mechanisms from the last SetMechanisms call.
func (m *MockSASL) GetMechanisms() []string {
	return m.mechanisms
}

// GetSetMechanismsCalls returns how many times SetMechanisms was invoked.
func (m *MockSASL) GetSetMechanismsCalls() int {
	return m.setMechanismsCalls
}

// =============================================================================
// MockTransport - Mock implementation of Transport interface for testing
// =============================================================================

// MockTransport is a mock implementation of Transport interface for testing
type MockTransport struct {
	sasl           *MockSASL
	condition      *ErrorCondition
	secureError    error
	securedDomains []*TLSDomain
	unbindCalls    int
}

func NewMockTransport() *MockTransport {
	return &MockTransport{
		sasl:           NewMockSASL(),
		securedDomains: make([]*TLSDomain, 0),
	}
}

func (m *MockTransport) SASL() SASL {
	return m.sasl
}

func (m *MockTransport) Secure(domain *TLSDomain) error {
	if m.secureError != nil {
		return m.secureError
	}
	m.securedDomains = append(m.securedDomains, domain)
	return nil
}

func (m *MockTransport) Unbind() {
	m.unbindCalls++
}

func (m *MockTransport) Condition() *ErrorCondition {
	return m.condition
}

// Helper methods for testing
func (m *MockTransport) SetSecureError(err error) {
	m.secureError = err
}

func (m *MockTransport) SetCondition(condition *ErrorCondition) {
	m.condition = condition
}

// GetSASL returns the mock SASL layer for assertions.
func (m *MockTransport) GetSASL() *MockSASL {
	return m.sasl
}

// GetSecuredDomains returns all domains applied through Secure.
func (m *MockTransport) GetSecuredDomains() []*TLSDomain {
	return m.securedDomains
}

// GetLastSecuredDomain returns the last domain applied through Secure, or nil if none.
func (m *MockTransport) GetLastSecuredDomain() *TLSDomain {
	if len(m.securedDomains) == 0 {
		return nil
	}
	return m.securedDomains[len(m.securedDomains)-1]
}

// GetUnbindCalls returns how many times Unbind was invoked.
func (m *MockTransport) GetUnbindCalls() int {
	return m.unbindCalls
}

// =============================================================================
// MockReactor - Mock implementation of Reactor interface for testing
// =============================================================================

// MockReactor is a mock implementation of Reactor interface for testing
type MockReactor struct {
	address string
}

func NewMockReactor() *MockReactor {
	return &MockReactor{address: "localhost"}
}

func (m *MockReactor) ConnectionAddress(conn Connection) string {
	return m.address
}

// Helper methods for testing
func (m *MockReactor) SetConnectionAddress(address string) {
	m.address = address
}

// =============================================================================
// MockConnectionObserver - Mock implementation of ConnectionObserver for testing
// =============================================================================

// MockConnectionObserver is a mock implementation of ConnectionObserver interface for testing
type MockConnectionObserver struct {
	hostName            string
	openCalls           int
	conditions          []*ErrorCondition
	errorCalls          int
	onConnectionOpenFn  func()
	onConnectionErrorFn func(condition *ErrorCondition)
}

func NewMockConnectionObserver() *MockConnectionObserver {
	return &MockConnectionObserver{
		hostName:   "localhost",
		conditions: make([]*ErrorCondition, 0),
	}
}

func (m *MockConnectionObserver) HostName() string {
	return m.hostName
}

func (m *MockConnectionObserver) OnConnectionOpen() {
	m.openCalls++
	if m.onConnectionOpenFn != nil {
		m.onConnectionOpenFn()
	}
}

func (m *MockConnectionObserver) OnConnectionError(condition *ErrorCondition) {
	m.errorCalls++
	m.conditions = append(m.conditions, condition)
	if m.onConnectionErrorFn != nil {
		m.onConnectionErrorFn(condition)
	}
}

// Helper methods for testing
func (m *MockConnectionObserver) SetHostName(hostName string) {
	m.hostName = hostName
}

// SetOnConnectionOpen installs a hook invoked inside OnConnectionOpen.
func (m *MockConnectionObserver) SetOnConnectionOpen(fn func()) {
	m.onConnectionOpenFn = fn
}

// SetOnConnectionError installs a hook invoked inside OnConnectionError.
func (m *MockConnectionObserver) SetOnConnectionError(fn func(condition *ErrorCondition)) {
	m.onConnectionErrorFn = fn
}

// GetOpenCalls returns how many times OnConnectionOpen was invoked.
func (m *MockConnectionObserver) GetOpenCalls() int {
	return m.openCalls
}

// GetErrorCalls returns how many times OnConnectionError was invoked,
// including calls that forwarded a nil condition.
func (m *MockConnectionObserver) GetErrorCalls() int {
	return m.errorCalls
}

// GetConditions returns every forwarded condition, nil entries included.
func (m *MockConnectionObserver) GetConditions() []*ErrorCondition {
	return m.conditions
}

// GetLastCondition returns the last forwarded condition, or nil if none.
func (m *MockConnectionObserver) GetLastCondition() *ErrorCondition {
	if len(m.conditions) == 0 {
		return nil
	}
	return m.conditions[len(m.conditions)-1]
}
