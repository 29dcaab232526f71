package commands

const (
	_etc = "/usr/local/etc/perfmetrics"
	_var = "/usr/local/var/perfmetrics"

	DEFAULT_WORKDIR = _var
	DEFAULT_CONFIG  = _etc + "/perfmetrics.yaml"
)
