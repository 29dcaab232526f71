package commands

const (
	_etc = "/usr/local/etc/com.github.gcsfuse-tools/perfmetrics"
	_var = "/usr/local/var/com.github.gcsfuse-tools/perfmetrics"

	DEFAULT_WORKDIR = _var
	DEFAULT_CONFIG  = _etc + "/perfmetrics.yaml"
)
