package main

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/born-ml/trainkit/autodiff"
	"github.com/born-ml/trainkit/backend/cpu"
	"github.com/born-ml/trainkit/container"
	"github.com/born-ml/trainkit/device"
	"github.com/born-ml/trainkit/geom"
	"github.com/born-ml/trainkit/nn"
	"github.com/born-ml/trainkit/optim"
	"github.com/born-ml/trainkit/tensor"
	"github.com/born-ml/trainkit/trainlog"
)

type fitOptions struct {
	configPath string
	logPath    string
	pretrain   string
	resume     string
	weightsOut string
	stateOut   string
	points     int
	batches    int
	epochs     int
	angle      float64
	seed       int64
	verbose    bool
}

func newFitRotationCmd() *cobra.Command {
	var opts fitOptions
	cmd := &cobra.Command{
		Use:   "fit-rotation",
		Short: "Recover a 2D rotation angle by gradient descent",
		Long: `Generate random points, rotate them by --angle and fit a single angle
parameter so that rotating the points by it matches the targets.

Each batch is drawn with an int16 index tensor widened to int64, selected
from the dataset and placed on the best available device. Progress goes to
stderr and to the --log file.`,
		Example: `  # Fit with the built-in schedule
  trainkit fit-rotation --angle 0.7

  # Fit with a custom optimizer and keep weights and optimizer state
  trainkit fit-rotation --config optim.yaml --weights theta.safetensors --state opt.safetensors

  # Continue from saved weights and optimizer state
  trainkit fit-rotation --pretrain theta.safetensors --resume opt.safetensors`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return fitRotation(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "Optimizer config (YAML); default adam 0.05 then 0.005")
	f.StringVar(&opts.logPath, "log", "fit-rotation.log", "Log file, appended to")
	f.StringVar(&opts.pretrain, "pretrain", "", "SafeTensors weights to start from")
	f.StringVar(&opts.resume, "resume", "", "Optimizer snapshot to resume from")
	f.StringVar(&opts.weightsOut, "weights", "", "Write fitted weights to this SafeTensors file")
	f.StringVar(&opts.stateOut, "state", "", "Write the optimizer snapshot to this SafeTensors file")
	f.IntVarP(&opts.points, "points", "n", 256, "Number of points")
	f.IntVarP(&opts.batches, "batches", "b", 8, "Batches per epoch")
	f.IntVarP(&opts.epochs, "epochs", "e", 40, "Number of epochs")
	f.Float64Var(&opts.angle, "angle", 0.7, "Rotation angle to recover, in radians")
	f.Int64Var(&opts.seed, "seed", 1, "Random seed")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "Log every batch")
	return cmd
}

// fitConfig is the optimizer used when no --config is given.
func fitConfig(epochs int) optim.Config {
	cfg := optim.DefaultConfig()
	cfg.LR = []float32{0.05, 0.005}
	cfg.LREpochs = []int{epochs / 2}
	return cfg
}

func (o fitOptions) validate() error {
	switch {
	case o.points < 1 || o.points > math.MaxInt16:
		return fmt.Errorf("--points must be in [1, %d], got %d", math.MaxInt16, o.points)
	case o.batches < 1 || o.batches > o.points:
		return fmt.Errorf("--batches must be in [1, --points], got %d", o.batches)
	case o.epochs < 1:
		return fmt.Errorf("--epochs must be positive, got %d", o.epochs)
	}
	return nil
}

func fitRotation(cmd *cobra.Command, opts fitOptions) error {
	if err := opts.validate(); err != nil {
		return err
	}

	tee, err := trainlog.New(opts.logPath, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer tee.Close()

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	log := tee.Slog(&slog.HandlerOptions{Level: level}).With("run", uuid.NewString())

	cfg := fitConfig(opts.epochs)
	if opts.configPath != "" {
		if cfg, err = optim.LoadConfig(opts.configPath); err != nil {
			return err
		}
	}

	ctx := device.Auto(log)
	defer ctx.Release()
	log.Info("fit-rotation", "device", ctx.Target(), "points", opts.points, "epochs", opts.epochs, "opt", cfg.Opt)

	rng := rand.New(rand.NewSource(opts.seed))
	data, err := rotationDataset(rng, opts.points, opts.angle)
	if err != nil {
		return err
	}

	net := nn.NewParamSet()
	theta := net.Add("theta", tensor.Zeros(tensor.Shape{1}, tensor.Float32, tensor.CPU))
	if opts.pretrain != "" {
		report, err := nn.LoadPretrainFile(net, opts.pretrain, tensor.CPU)
		if err != nil {
			return err
		}
		log.Info("pretrained weights", "path", opts.pretrain, "report", report)
	}

	opt, err := optim.NewScheduled([][]*nn.Parameter{net.Parameters()}, cfg)
	if err != nil {
		return err
	}
	if opts.resume != "" {
		if err := opt.LoadStateFile(opts.resume); err != nil {
			return err
		}
		log.Info("resumed optimizer", "path", opts.resume)
	}

	backend := autodiff.New(cpu.New())
	batchSize := opts.points / opts.batches
	for epoch := 0; epoch < opts.epochs; epoch++ {
		perm := rng.Perm(opts.points)
		var epochLoss float64
		var lr float32
		for b := 0; b < opts.batches; b++ {
			batch, err := selectBatch(ctx, data, perm[b*batchSize:(b+1)*batchSize])
			if err != nil {
				return fmt.Errorf("epoch %d batch %d: %w", epoch, b, err)
			}

			opt.ZeroGrad()
			loss, err := rotationStep(backend, theta, batch)
			releaseBatch(batch)
			if err != nil {
				return fmt.Errorf("epoch %d batch %d: %w", epoch, b, err)
			}
			lr = opt.Step(float64(epoch) + float64(b)/float64(opts.batches))
			epochLoss += loss
			log.Debug("batch", "epoch", epoch, "batch", b, "loss", loss, "grad_norm", opt.GradNorm())
		}
		log.Info("epoch", "epoch", epoch, "loss", epochLoss/float64(opts.batches), "lr", lr,
			"theta", theta.Tensor().AsFloat32()[0])
	}

	if opts.weightsOut != "" {
		if err := nn.Save(net, opts.weightsOut, map[string]string{"angle": fmt.Sprint(opts.angle)}); err != nil {
			return err
		}
		log.Info("saved weights", "path", opts.weightsOut)
	}
	if opts.stateOut != "" {
		id, err := opt.SaveState(opts.stateOut)
		if err != nil {
			return err
		}
		log.Info("saved optimizer state", "path", opts.stateOut, "snapshot", id)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "theta = %.4f (target %.4f)\n", theta.Tensor().AsFloat32()[0], opts.angle)
	return nil
}

// rotationDataset returns n Gaussian points and the same points rotated by angle.
func rotationDataset(rng *rand.Rand, n int, angle float64) (map[string]*tensor.RawTensor, error) {
	xyData := make([]float32, 2*n)
	for i := range xyData {
		xyData[i] = float32(rng.NormFloat64())
	}
	angles := make([]float32, n)
	for i := range angles {
		angles[i] = float32(angle)
	}

	xy := tensor.MustFromSlice(xyData, tensor.Shape{n, 2}, tensor.CPU)
	target, err := geom.Rotate(cpu.New(), xy, tensor.MustFromSlice(angles, tensor.Shape{n}, tensor.CPU))
	if err != nil {
		return nil, err
	}

	data := map[string]*tensor.RawTensor{"xy": xy}
	container.MergeDict(map[string]*tensor.RawTensor{"target": target}, data)
	return data, nil
}

// selectBatch gathers rows of data and places them with ctx.
func selectBatch(ctx *device.Context, data map[string]*tensor.RawTensor, rows []int) (map[string]*tensor.RawTensor, error) {
	idx := make([]int16, len(rows))
	for i, r := range rows {
		idx[i] = int16(r)
	}
	wide, err := container.ToLong(container.Of(tensor.MustFromSlice(idx, tensor.Shape{len(idx)}, tensor.CPU)))
	if err != nil {
		return nil, err
	}
	sel, err := tensor.IndicesFrom(wide.(container.Array).T)
	if err != nil {
		return nil, err
	}

	picked, err := container.IndexDict(data, sel)
	if err != nil {
		return nil, err
	}
	placed, err := container.ToDevice(ctx, container.Of(picked))
	if err != nil {
		return nil, err
	}

	out := make(map[string]*tensor.RawTensor, len(picked))
	for k, v := range placed.(container.Map) {
		out[k] = v.(container.Array).T
	}
	return out, nil
}

// releaseBatch frees the device mirrors of a placed batch.
func releaseBatch(batch map[string]*tensor.RawTensor) {
	for _, t := range batch {
		if buf := t.DeviceBuffer(); buf != nil {
			buf.Release()
		}
	}
}

// rotationStep computes the mean squared error of rotating batch["xy"] by
// theta against batch["target"] and attaches the gradient to theta.
func rotationStep(backend *autodiff.Backend[*cpu.Backend], theta *nn.Parameter, batch map[string]*tensor.RawTensor) (float64, error) {
	xy, target := batch["xy"], batch["target"]
	n := xy.Shape()[0]

	tape := backend.Tape()
	tape.Clear()
	tape.StartRecording()
	defer tape.StopRecording()

	copies := make([]*tensor.RawTensor, n)
	for i := range copies {
		copies[i] = theta.Tensor()
	}
	angles := backend.Cat(copies, 0)

	pred, err := geom.Rotate(backend, xy, angles)
	if err != nil {
		return 0, err
	}
	diff := backend.Sub(pred, target)
	loss := backend.MulScalar(backend.Sum(backend.Mul(diff, diff)), 1/float64(n))

	grads := autodiff.Backward(loss, backend)
	if err := nn.AttachGrads([]*nn.Parameter{theta}, grads); err != nil {
		return 0, err
	}
	return float64(loss.AsFloat32()[0]), nil
}
