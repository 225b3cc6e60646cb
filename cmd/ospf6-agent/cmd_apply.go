package main

import (
	"encoding/json"
	"io"

	"ospf6-agent/internal/application/usecases"
	"ospf6-agent/internal/domain/entities"
	domainErrors "ospf6-agent/internal/domain/errors"
	"ospf6-agent/internal/infrastructure/metrics"

	"github.com/spf13/cobra"
)

type applyOptions struct {
	routerID     string
	iface        string
	area         string
	pointToPoint bool
	passive      bool
	state        string
	saveConfig   bool
}

func newApplyCmd() *cobra.Command {
	opts := &applyOptions{}

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Reconcile one OSPFv3 setting and print a JSON report",
		Long: `Compare one declared OSPFv3 setting with the ospf6d running config and
run the cl-ospf6 commands needed to converge.

  ospf6-agent apply --router-id 10.1.1.1
  ospf6-agent apply --interface swp1 --area 0.0.0.0 --point2point
  ospf6-agent apply --interface swp1 --passive=false --saveconfig
  ospf6-agent apply --interface swp1 --state absent`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(cmd, opts.params(cmd))
		},
	}

	bindApplyFlags(cmd, opts)
	return cmd
}

func bindApplyFlags(cmd *cobra.Command, opts *applyOptions) {
	cmd.Flags().StringVar(&opts.routerID, "router-id", "", "OSPFv3 router id (dotted quad)")
	cmd.Flags().StringVar(&opts.iface, "interface", "", "interface to configure")
	cmd.Flags().StringVar(&opts.area, "area", "", "OSPFv3 area (default 0.0.0.0)")
	cmd.Flags().BoolVar(&opts.pointToPoint, "point2point", false, "network type point-to-point; left alone when not given")
	cmd.Flags().BoolVar(&opts.passive, "passive", false, "passive interface; left alone when not given")
	cmd.Flags().StringVar(&opts.state, "state", "", "present or absent (default present)")
	cmd.Flags().BoolVar(&opts.saveConfig, "saveconfig", false, "persist the config with 'wr mem' after a change")
}

// params converts the flags; boolean options not given on the command line
// stay undeclared
func (o *applyOptions) params(cmd *cobra.Command) entities.Params {
	p := entities.Params{
		RouterID:   o.routerID,
		Interface:  o.iface,
		Area:       o.area,
		State:      o.state,
		SaveConfig: o.saveConfig,
	}
	if cmd.Flags().Changed("point2point") {
		v := o.pointToPoint
		p.PointToPoint = &v
	}
	if cmd.Flags().Changed("passive") {
		v := o.passive
		p.Passive = &v
	}
	return p
}

func runApply(cmd *cobra.Command, params entities.Params) error {
	out := cmd.OutOrStdout()

	req, err := entities.NewRequest(params)
	if err != nil {
		return reportFailure(out, err)
	}

	appContainer, logger, err := bootstrap(cmd.Context())
	if err != nil {
		return reportFailure(out, err)
	}
	defer closeContainer(appContainer, logger)

	result, err := appContainer.GetReconcileUseCase().Execute(cmd.Context(), usecases.ReconcileInput{
		Request:    req,
		SaveConfig: params.SaveConfig,
	})

	if path := appContainer.GetConfig().Metrics.TextfilePath; path != "" {
		if werr := metrics.WriteTextfile(path); werr != nil {
			logger.WithError(werr).WithField("path", path).Warn("Failed to write metrics textfile")
		}
	}

	if err != nil {
		return reportFailure(out, err)
	}
	return writeReport(out, result.Report)
}

func writeReport(w io.Writer, report entities.Report) error {
	return json.NewEncoder(w).Encode(report)
}

// reportFailure prints the failed report and returns errReported so main
// exits non-zero without printing again
func reportFailure(w io.Writer, err error) error {
	if werr := writeReport(w, entities.FailedReport(domainErrors.UserMessage(err))); werr != nil {
		return werr
	}
	return errReported
}
