package main

type Flags struct {
	Extract bool    `short:"x" long:"extract" description:"extract the crate archive after downloading"`
	Output  *string `short:"o" long:"output" value-name:"PATH" description:"file or directory to write the crate to; use \"-\" for standard output"`
	Verbose []bool  `short:"v" long:"verbose" description:"increase logging verbosity; can be repeated"`
	Quiet   []bool  `short:"q" long:"quiet" description:"decrease logging verbosity; can be repeated"`
	Help    bool    `short:"H" long:"help" description:"show this help message"`
	Version bool    `short:"V" long:"version" description:"show version information"`
}
