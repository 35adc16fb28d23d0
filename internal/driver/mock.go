package driver

import "context"

// MockDriver is a test double for Driver interface
type MockDriver struct {
	name  string
	paths Paths

	// Function mocks - set these to customize behavior
	WriteFunc     func(domain, content string) error
	RemoveFunc    func(domain string) (bool, error)
	EnableFunc    func(domain string) (bool, error)
	DisableFunc   func(domain string) (bool, error)
	ListFunc      func() ([]Entry, error)
	ExistsFunc    func(domain string) (bool, error)
	IsEnabledFunc func(domain string) (bool, error)
	ReloadFunc    func(ctx context.Context) error

	// Call tracking - check these to verify interactions
	WriteCalls   []WriteCall
	RemoveCalls  []string
	EnableCalls  []string
	DisableCalls []string
	ListCalls    int
	ReloadCalls  int
}

// WriteCall records arguments passed to Write
type WriteCall struct {
	Domain  string
	Content string
}

// NewMockDriver creates a new MockDriver with default no-op implementations
func NewMockDriver(name, availableDir, enabledDir string) *MockDriver {
	return &MockDriver{
		name: name,
		paths: Paths{
			Available: availableDir,
			Enabled:   enabledDir,
		},
	}
}

// Name returns the driver name
func (m *MockDriver) Name() string {
	return m.name
}

// Paths returns the configured paths
func (m *MockDriver) Paths() Paths {
	return m.paths
}

// Write records the call and invokes the mock function if set
func (m *MockDriver) Write(domain, content string) error {
	m.WriteCalls = append(m.WriteCalls, WriteCall{Domain: domain, Content: content})
	if m.WriteFunc != nil {
		return m.WriteFunc(domain, content)
	}
	return nil
}

// Remove records the call and invokes the mock function if set
func (m *MockDriver) Remove(domain string) (bool, error) {
	m.RemoveCalls = append(m.RemoveCalls, domain)
	if m.RemoveFunc != nil {
		return m.RemoveFunc(domain)
	}
	return true, nil
}

// Enable records the call and invokes the mock function if set
func (m *MockDriver) Enable(domain string) (bool, error) {
	m.EnableCalls = append(m.EnableCalls, domain)
	if m.EnableFunc != nil {
		return m.EnableFunc(domain)
	}
	return true, nil
}

// Disable records the call and invokes the mock function if set
func (m *MockDriver) Disable(domain string) (bool, error) {
	m.DisableCalls = append(m.DisableCalls, domain)
	if m.DisableFunc != nil {
		return m.DisableFunc(domain)
	}
	return true, nil
}

// List records the call and invokes the mock function if set
func (m *MockDriver) List() ([]Entry, error) {
	m.ListCalls++
	if m.ListFunc != nil {
		return m.ListFunc()
	}
	return []Entry{}, nil
}

// Exists invokes the mock function if set
func (m *MockDriver) Exists(domain string) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(domain)
	}
	return true, nil
}

// IsEnabled invokes the mock function if set
func (m *MockDriver) IsEnabled(domain string) (bool, error) {
	if m.IsEnabledFunc != nil {
		return m.IsEnabledFunc(domain)
	}
	return false, nil
}

// Reload records the call and invokes the mock function if set
func (m *MockDriver) Reload(ctx context.Context) error {
	m.ReloadCalls++
	if m.ReloadFunc != nil {
		return m.ReloadFunc(ctx)
	}
	return nil
}

// Reset clears all call tracking
func (m *MockDriver) Reset() {
	m.WriteCalls = nil
	m.RemoveCalls = nil
	m.EnableCalls = nil
	m.DisableCalls = nil
	m.ListCalls = 0
	m.ReloadCalls = 0
}
