package serving

import "context"

// EchoStages returns the request instances as the prediction. It lets the shell
// run locally without a real pipeline.
type EchoStages struct{}

func (EchoStages) Ingest(_ context.Context, req PredictionRequest) (interface{}, error) {
	return req.Instances, nil
}

func (EchoStages) Features(_ context.Context, input interface{}) (interface{}, error) {
	return input, nil
}

func (EchoStages) Predict(_ context.Context, _ interface{}, features interface{}) (interface{}, error) {
	return features, nil
}

func StaticModel(model interface{}) ModelLoader {
	return func(context.Context) (interface{}, error) {
		return model, nil
	}
}
