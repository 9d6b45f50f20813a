package broker

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/sqs"
	"github.com/google/uuid"

	"listqueue/config"
)

type SQSBroker struct {
	queue    *sqs.SQS
	queueUrl string
	waitTime int64
	fifo     bool
}

func NewSQS(conf *config.AWSsqsConfig, waitTime int64) (*SQSBroker, error) {
	if conf == nil {
		return nil, fmt.Errorf("aws config required")
	}

	awsConf := &aws.Config{
		Region:      aws.String(conf.Region),
		Credentials: credentials.NewStaticCredentials(conf.ClientId, conf.ClientSecret, conf.ClientToken),
	}
	if conf.Endpoint != "" {
		awsConf.Endpoint = aws.String(conf.Endpoint)
	}

	sess, err := session.NewSession(awsConf)
	if err != nil {
		return nil, fmt.Errorf("cannot create aws session: %w", err)
	}
	if _, err := sess.Config.Credentials.Get(); err != nil {
		return nil, fmt.Errorf("cannot assign session with credentials: %w", err)
	}

	return &SQSBroker{
		queue:    sqs.New(sess),
		queueUrl: conf.QueueUrl,
		waitTime: waitTime,
		fifo:     isFifo(conf.QueueUrl),
	}, nil
}

func (b *SQSBroker) Receive(ctx context.Context) ([]Message, error) {
	msgResult, err := b.queue.ReceiveMessageWithContext(ctx, &sqs.ReceiveMessageInput{
		AttributeNames: []*string{
			aws.String(sqs.MessageSystemAttributeNameSentTimestamp),
		},
		MessageAttributeNames: []*string{
			aws.String(sqs.QueueAttributeNameAll),
		},
		QueueUrl:            &b.queueUrl,
		MaxNumberOfMessages: aws.Int64(10),
		WaitTimeSeconds:     aws.Int64(b.waitTime),
	})
	if err != nil {
		return nil, err
	}

	messages := make([]Message, 0, len(msgResult.Messages))
	for _, m := range msgResult.Messages {
		messages = append(messages, Message{
			ID:      aws.StringValue(m.MessageId),
			Body:    aws.StringValue(m.Body),
			Receipt: aws.StringValue(m.ReceiptHandle),
		})
	}
	return messages, nil
}

func (b *SQSBroker) Ack(ctx context.Context, msg Message) error {
	_, err := b.queue.DeleteMessageWithContext(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      &b.queueUrl,
		ReceiptHandle: aws.String(msg.Receipt),
	})
	return err
}

func (b *SQSBroker) Send(ctx context.Context, body string) error {
	_, err := b.queue.SendMessageWithContext(ctx, b.sendInput(body))
	return err
}

func (b *SQSBroker) sendInput(body string) *sqs.SendMessageInput {
	input := &sqs.SendMessageInput{
		DelaySeconds: aws.Int64(0),
		MessageBody:  aws.String(body),
		QueueUrl:     &b.queueUrl,
	}
	// One message group keeps every command in order across queues.
	if b.fifo {
		input.MessageGroupId = aws.String("listqueue")
		input.MessageDeduplicationId = aws.String(uuid.NewString())
	}
	return input
}

func isFifo(queueUrl string) bool {
	return strings.HasSuffix(queueUrl, ".fifo")
}
