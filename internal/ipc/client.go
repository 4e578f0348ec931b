package ipc

import (
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"
)

// Client provides RPC access to the daemon.
type Client struct {
	conn   net.Conn
	client *rpc.Client
}

// Dial connects to the IPC server at the given socket path.
func Dial(path string) (*Client, error) {
	conn, err := net.DialTimeout("unix", path, 2*time.Second)
	if err != nil {
		return nil, err
	}
	rpcClient := rpc.NewClientWithCodec(jsonrpc.NewClientCodec(conn))
	return &Client{conn: conn, client: rpcClient}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	if c.client != nil {
		_ = c.client.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// Organize runs the full organize pipeline and waits for completion.
func (c *Client) Organize(threshold int, autoClose bool) (*OrganizeResponse, error) {
	var resp OrganizeResponse
	req := OrganizeRequest{Threshold: threshold, AutoClose: autoClose}
	if err := c.client.Call("TabTidy.Organize", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CloseTabs runs the close-only pipeline and waits for completion.
func (c *Client) CloseTabs(threshold int) (*CloseResponse, error) {
	var resp CloseResponse
	if err := c.client.Call("TabTidy.Close", CloseRequest{Threshold: threshold}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Undo reverses the most recent recorded action.
func (c *Client) Undo() (*UndoResponse, error) {
	var resp UndoResponse
	if err := c.client.Call("TabTidy.Undo", UndoRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Status retrieves the daemon status and preflight checks.
func (c *Client) Status() (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.client.Call("TabTidy.Status", StatusRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Journal retrieves the current action journal slot.
func (c *Client) Journal() (*JournalResponse, error) {
	var resp JournalResponse
	if err := c.client.Call("TabTidy.Journal", JournalRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SettingGet reads one persisted setting.
func (c *Client) SettingGet(key string) (*SettingGetResponse, error) {
	var resp SettingGetResponse
	if err := c.client.Call("TabTidy.SettingGet", SettingGetRequest{Key: key}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SettingSet writes one persisted setting.
func (c *Client) SettingSet(key, value string) error {
	var resp SettingSetResponse
	return c.client.Call("TabTidy.SettingSet", SettingSetRequest{Key: key, Value: value}, &resp)
}

// SettingRemove deletes one persisted setting.
func (c *Client) SettingRemove(key string) error {
	var resp SettingRemoveResponse
	return c.client.Call("TabTidy.SettingRemove", SettingRemoveRequest{Key: key}, &resp)
}

// TestNotify asks the daemon to send a test notification.
func (c *Client) TestNotify() (*TestNotifyResponse, error) {
	var resp TestNotifyResponse
	if err := c.client.Call("TabTidy.TestNotify", TestNotifyRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SyntheticTabs opens placeholder tabs for pipeline testing.
func (c *Client) SyntheticTabs(count int) (*SyntheticTabsResponse, error) {
	var resp SyntheticTabsResponse
	if err := c.client.Call("TabTidy.SyntheticTabs", SyntheticTabsRequest{Count: count}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CloseAllButActive closes every closable tab except the active ones.
func (c *Client) CloseAllButActive() (*CloseAllButActiveResponse, error) {
	var resp CloseAllButActiveResponse
	if err := c.client.Call("TabTidy.CloseAllButActive", CloseAllButActiveRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
