package ipc

import "tabtidy/internal/api"

// SocketName is the socket file created under the state directory.
const SocketName = "tabtidyd.sock"

type OrganizeRequest struct {
	Threshold int
	AutoClose bool
}

type OrganizeResponse struct {
	JobID    string
	Conflict bool
	Message  string
}

type CloseRequest struct {
	Threshold int
}

type CloseResponse struct {
	JobID    string
	Conflict bool
	Message  string
}

type UndoRequest struct{}

type UndoResponse struct {
	JobID         string
	Conflict      bool
	NothingToUndo bool
	Message       string
}

type StatusRequest struct{}

type StatusResponse struct {
	Status api.StatusView
	Checks []api.CheckView
}

type JournalRequest struct{}

type JournalResponse struct {
	Found  bool
	Record api.JournalView
}

type SettingGetRequest struct {
	Key string
}

type SettingGetResponse struct {
	Found bool
	Value string
}

type SettingSetRequest struct {
	Key   string
	Value string
}

type SettingSetResponse struct{}

type SettingRemoveRequest struct {
	Key string
}

type SettingRemoveResponse struct{}

type SyntheticTabsRequest struct {
	Count int
}

type SyntheticTabsResponse struct {
	Conflict bool
	Message  string
}

type TestNotifyRequest struct{}

type TestNotifyResponse struct {
	Message string
}

type CloseAllButActiveRequest struct{}

type CloseAllButActiveResponse struct {
	Conflict bool
	Message  string
}
